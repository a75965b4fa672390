package datauri

import "errors"

var (
	ErrMalformedDataURI = errors.New("datauri: string is not a base64 data URI")
	ErrInvalidPayload   = errors.New("datauri: payload is not valid base64")
	ErrNilFile          = errors.New("datauri: file is nil")
)
