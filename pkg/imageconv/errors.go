package imageconv

import (
	"errors"

	"github.com/dmitrymomot/contentkit/pkg/datauri"
)

var (
	// Input errors
	ErrNilImage        = errors.New("imageconv: image is nil or empty")
	ErrUnsupportedType = errors.New("imageconv: MIME type is not a supported image type")

	// Rendering errors
	ErrDecode             = errors.New("imageconv: failed to decode image")
	ErrEncode             = errors.New("imageconv: encoder produced no data")
	ErrBackendUnavailable = errors.New("imageconv: rendering backend is unavailable")

	// Configuration errors
	ErrInvalidConfig = errors.New("imageconv: invalid configuration")
)

// IsMalformed reports whether err was caused by the input rather than by the backend.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrNilImage) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, datauri.ErrMalformedDataURI) ||
		errors.Is(err, datauri.ErrInvalidPayload) ||
		errors.Is(err, datauri.ErrNilFile)
}

// IsBackendFailure reports whether err came from decoding, encoding or the backend itself.
func IsBackendFailure(err error) bool {
	return errors.Is(err, ErrDecode) ||
		errors.Is(err, ErrEncode) ||
		errors.Is(err, ErrBackendUnavailable)
}
