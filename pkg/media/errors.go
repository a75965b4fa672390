package media

import "errors"

var (
	// Input errors
	ErrEmptyData   = errors.New("media: data is empty")
	ErrInvalidPath = errors.New("media: invalid path")

	// Storage errors
	ErrNotFound           = errors.New("media: object not found")
	ErrBucketNotFound     = errors.New("media: bucket not found")
	ErrAccessDenied       = errors.New("media: access denied")
	ErrRequestTimeout     = errors.New("media: request timed out")
	ErrServiceUnavailable = errors.New("media: service temporarily unavailable")
	ErrFailedToWriteFile  = errors.New("media: failed to write file")
	ErrFailedToDelete     = errors.New("media: failed to delete object")

	// Context errors
	ErrOperationTimeout  = errors.New("media: operation timed out")
	ErrOperationCanceled = errors.New("media: operation canceled")

	// Configuration errors
	ErrInvalidConfig      = errors.New("media: invalid configuration")
	ErrFailedToLoadConfig = errors.New("media: failed to load AWS config")
)
