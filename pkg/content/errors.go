package content

import "errors"

var ErrNilConverter = errors.New("content: converter is nil")
