package imageconv_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contentkit/pkg/datauri"
	"github.com/dmitrymomot/contentkit/pkg/imageconv"
)

// pngImage renders a w×h half-transparent red square.
func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: 255, A: 128})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngFile(t *testing.T, name string, w, h int) *datauri.File {
	t.Helper()
	return &datauri.File{
		Name:      name + ".png",
		MIMEType:  "image/png",
		Extension: "png",
		Data:      pngImage(t, w, h),
	}
}

// jpegFile encodes a w×h JPEG whose EXIF block sets the given orientation (1..8).
func jpegFile(t *testing.T, name string, w, h int, orientation byte) *datauri.File {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	raw := buf.Bytes()

	// APP1: "Exif\0\0", big-endian TIFF header, one IFD entry (0x0112 Orientation, SHORT).
	exif := []byte{
		0xFF, 0xE1, 0x00, 0x22,
		'E', 'x', 'i', 'f', 0x00, 0x00,
		'M', 'M', 0x00, 0x2A, 0x00, 0x00, 0x00, 0x08,
		0x00, 0x01,
		0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, orientation, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	data := make([]byte, 0, len(raw)+len(exif))
	data = append(data, raw[:2]...) // SOI
	data = append(data, exif...)
	data = append(data, raw[2:]...)

	return &datauri.File{
		Name:      name + ".jpg",
		MIMEType:  "image/jpeg",
		Extension: "jpg",
		Data:      data,
	}
}

// fakeConverter returns a fixed payload or a fixed error and counts calls.
type fakeConverter struct {
	data  []byte
	err   error
	calls atomic.Int32
}

func (f *fakeConverter) Convert(_ context.Context, in *datauri.File, target imageconv.Format) (*datauri.File, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &datauri.File{
		Name:      in.BaseName() + "." + target.Extension,
		MIMEType:  target.MIMEType,
		Extension: target.Extension,
		Data:      f.data,
	}, nil
}
