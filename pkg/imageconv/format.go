package imageconv

import (
	"strings"

	"github.com/dmitrymomot/contentkit/pkg/datauri"
)

// Format is a target encoding for conversions.
type Format struct {
	MIMEType  string
	Extension string
}

var (
	WebP = Format{MIMEType: datauri.TypeWebP.MIMEType, Extension: datauri.TypeWebP.Extension}
	JPEG = Format{MIMEType: datauri.TypeJPEG.MIMEType, Extension: datauri.TypeJPEG.Extension}
	PNG  = Format{MIMEType: datauri.TypePNG.MIMEType, Extension: datauri.TypePNG.Extension}
)

// DefaultFormat is the canonical normalization target.
var DefaultFormat = WebP

// ParseFormat maps a name ("webp", "jpeg", "jpg", "png") or MIME type to a Format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "webp", WebP.MIMEType:
		return WebP, true
	case "jpeg", "jpg", JPEG.MIMEType, "image/jpg":
		return JPEG, true
	case "png", PNG.MIMEType:
		return PNG, true
	default:
		return Format{}, false
	}
}

func (f Format) String() string {
	return f.Extension
}

// output builds the converted file: same base name, new extension and MIME type.
func output(in *datauri.File, target Format, data []byte) *datauri.File {
	return &datauri.File{
		Name:      in.BaseName() + "." + target.Extension,
		MIMEType:  target.MIMEType,
		Extension: target.Extension,
		Data:      data,
	}
}
