package logger

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Backend records the image conversion backend under the key "backend".
func Backend(name string) slog.Attr {
	return slog.String("backend", name)
}

// MIMEType records a content type under the key "mime_type".
func MIMEType(mime string) slog.Attr {
	return slog.String("mime_type", mime)
}

// Bytes records a byte count under the key "size" in human-readable form, e.g. "1.2 MB".
func Bytes(n int64) slog.Attr {
	if n < 0 {
		n = 0
	}
	return slog.String("size", humanize.Bytes(uint64(n)))
}

// Count records a number of items under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// URL records a URL under the key "url".
func URL(u string) slog.Attr {
	return slog.String("url", u)
}
