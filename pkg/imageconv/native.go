package imageconv

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/dmitrymomot/contentkit/pkg/datauri"
)

const (
	defaultQuality  = 80
	defaultLossless = 6 // libwebp lossless effort, 0..9
)

// NativeConverter decodes and re-encodes images in memory with Go codecs and libwebp.
// It is safe for concurrent use.
type NativeConverter struct {
	quality  int
	lossless bool
	probe    *HTTPProber
}

// NativeOption configures NativeConverter.
type NativeOption func(*NativeConverter)

// WithQuality sets the lossy quality (1..100) for WebP and JPEG output.
// Out-of-range values fall back to the default.
func WithQuality(q int) NativeOption {
	return func(c *NativeConverter) {
		if q >= 1 && q <= 100 {
			c.quality = q
		}
	}
}

// WithLossless switches WebP output to lossless encoding.
func WithLossless(enabled bool) NativeOption {
	return func(c *NativeConverter) { c.lossless = enabled }
}

// WithProbeClient sets the HTTP client used by IsValidURL.
func WithProbeClient(client *http.Client) NativeOption {
	return func(c *NativeConverter) {
		if client != nil {
			c.probe = NewHTTPProber(client)
		}
	}
}

// NewNativeConverter creates the server-side backend.
func NewNativeConverter(opts ...NativeOption) *NativeConverter {
	c := &NativeConverter{
		quality: defaultQuality,
		probe:   NewHTTPProber(&http.Client{Timeout: 30 * time.Second}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *NativeConverter) Name() string { return BackendNative }

func (c *NativeConverter) Close() error { return nil }

// Convert implements Converter.
func (c *NativeConverter) Convert(ctx context.Context, in *datauri.File, target Format) (*datauri.File, error) {
	if in == nil || len(in.Data) == 0 {
		return nil, ErrNilImage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(in.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, in.MIMEType, err)
	}

	data, err := c.encode(img, target)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEncode
	}

	return output(in, target, data), nil
}

func (c *NativeConverter) encode(img image.Image, target Format) ([]byte, error) {
	var buf bytes.Buffer

	switch target.MIMEType {
	case WebP.MIMEType:
		var (
			opts *encoder.Options
			err  error
		)
		if c.lossless {
			opts, err = encoder.NewLosslessEncoderOptions(encoder.PresetDefault, defaultLossless)
		} else {
			opts, err = encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(c.quality))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: webp options: %v", ErrEncode, err)
		}
		if err := webp.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("%w: webp: %v", ErrEncode, err)
		}
	case JPEG.MIMEType:
		if err := imaging.Encode(&buf, flattenAlpha(img), imaging.JPEG, imaging.JPEGQuality(c.quality)); err != nil {
			return nil, fmt.Errorf("%w: jpeg: %v", ErrEncode, err)
		}
	case PNG.MIMEType:
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, fmt.Errorf("%w: png: %v", ErrEncode, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, target.MIMEType)
	}

	return buf.Bytes(), nil
}

// flattenAlpha composites img onto white; JPEG has no alpha channel.
func flattenAlpha(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// Dimensions returns the natural size of the image.
func (c *NativeConverter) Dimensions(ctx context.Context, in *datauri.File) (Size, error) {
	return DecodeSize(in)
}

// IsValidURL reports whether an image can be loaded from url.
func (c *NativeConverter) IsValidURL(ctx context.Context, url string) bool {
	return c.probe.IsValidURL(ctx, url)
}

// DecodeSize returns the natural size of the image as displayed, with EXIF
// orientation applied the same way Convert applies it.
func DecodeSize(in *datauri.File) (Size, error) {
	if in == nil || len(in.Data) == 0 {
		return Size{}, ErrNilImage
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(in.Data))
	if err != nil {
		return Size{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if format != "jpeg" {
		return Size{Width: cfg.Width, Height: cfg.Height}, nil
	}

	// Only JPEG carries the EXIF orientation imaging honors; orientations 5-8 swap the axes.
	img, err := imaging.Decode(bytes.NewReader(in.Data), imaging.AutoOrientation(true))
	if err != nil {
		return Size{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	b := img.Bounds()
	return Size{Width: b.Dx(), Height: b.Dy()}, nil
}
