package async

import "errors"

// ErrNilFuture is the error recorded for a nil entry passed to Settle or WaitAll.
var ErrNilFuture = errors.New("async: nil future")
