package datetime

import "errors"

var ErrInvalidDate = errors.New("datetime: invalid date")
