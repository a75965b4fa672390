package imageconv

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/contentkit/pkg/datauri"
)

// Convert validates in and converts it to target with conv.
func Convert(ctx context.Context, conv Converter, in *datauri.File, target Format) (*datauri.File, error) {
	if in == nil || len(in.Data) == 0 {
		return nil, ErrNilImage
	}
	if !datauri.IsImageType(in.MIMEType) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, in.MIMEType)
	}
	return conv.Convert(ctx, in, target)
}

// ToWebP converts in to WebP.
func ToWebP(ctx context.Context, conv Converter, in *datauri.File) (*datauri.File, error) {
	return Convert(ctx, conv, in, WebP)
}

// ConvertDataURI decodes uri, converts it to target and re-encodes the result.
func ConvertDataURI(ctx context.Context, conv Converter, uri string, target Format) (string, error) {
	in, err := datauri.Decode(uri)
	if err != nil {
		return "", err
	}

	out, err := Convert(ctx, conv, in, target)
	if err != nil {
		return "", err
	}

	return ToDataURI(out)
}

// ToWebPDataURI is ConvertDataURI with the WebP target.
func ToWebPDataURI(ctx context.Context, conv Converter, uri string) (string, error) {
	return ConvertDataURI(ctx, conv, uri, WebP)
}

// ToDataURI encodes an image file as a data URI. Only image MIME types are accepted.
func ToDataURI(f *datauri.File) (string, error) {
	if f == nil {
		return "", ErrNilImage
	}
	if !datauri.IsImageType(f.MIMEType) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, f.MIMEType)
	}
	return datauri.Encode(f.Data, f.MIMEType), nil
}
