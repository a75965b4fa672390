package imageconv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/dmitrymomot/contentkit/pkg/datauri"
)

// Markers thrown by the page scripts, mapped back to sentinel errors.
const (
	markerDecode  = "imageconv:decode"
	markerContext = "imageconv:context"
	markerEncode  = "imageconv:encode"
	markerType    = "imageconv:type"
)

// convertScript draws the image on an off-screen canvas at its natural size and
// re-encodes it. A source the browser cannot fetch counts as undecodable input.
// The object URL backing the decode is revoked on every path.
const convertScript = `(async (src, type, quality) => {
	let blob;
	try {
		blob = await (await fetch(src)).blob();
	} catch {
		throw new Error("` + markerDecode + `");
	}
	const url = URL.createObjectURL(blob);
	try {
		const img = await new Promise((resolve, reject) => {
			const el = new Image();
			el.onload = () => resolve(el);
			el.onerror = () => reject(new Error("` + markerDecode + `"));
			el.src = url;
		});
		const canvas = document.createElement("canvas");
		canvas.width = img.naturalWidth;
		canvas.height = img.naturalHeight;
		const ctx = canvas.getContext("2d");
		if (!ctx) throw new Error("` + markerContext + `");
		ctx.drawImage(img, 0, 0);
		const out = await new Promise((resolve) => canvas.toBlob(resolve, type, quality));
		if (!out) throw new Error("` + markerEncode + `");
		if (out.type !== type) throw new Error("` + markerType + `");
		return await new Promise((resolve, reject) => {
			const reader = new FileReader();
			reader.onload = () => resolve(reader.result);
			reader.onerror = () => reject(new Error("` + markerEncode + `"));
			reader.readAsDataURL(out);
		});
	} finally {
		URL.revokeObjectURL(url);
	}
})(__ARGS__)`

const dimensionsScript = `(async (src) => {
	let blob;
	try {
		blob = await (await fetch(src)).blob();
	} catch {
		throw new Error("` + markerDecode + `");
	}
	const url = URL.createObjectURL(blob);
	try {
		return await new Promise((resolve, reject) => {
			const el = new Image();
			el.onload = () => resolve({ width: el.naturalWidth, height: el.naturalHeight });
			el.onerror = () => reject(new Error("` + markerDecode + `"));
			el.src = url;
		});
	} finally {
		URL.revokeObjectURL(url);
	}
})(__ARGS__)`

const validURLScript = `((src) => new Promise((resolve) => {
	const el = new Image();
	el.onload = () => resolve(true);
	el.onerror = () => resolve(false);
	el.src = src;
}))(__ARGS__)`

// BrowserConverter renders images on a canvas in headless Chrome.
// One browser is shared; every call runs in its own tab, closed when the call returns.
type BrowserConverter struct {
	remoteURL string
	timeout   time.Duration
	quality   float64

	browserCtx context.Context
	cancel     context.CancelFunc
	closeOnce  sync.Once
}

// BrowserOption configures BrowserConverter.
type BrowserOption func(*BrowserConverter)

// WithRemoteURL connects to an already running browser instead of launching one.
func WithRemoteURL(url string) BrowserOption {
	return func(c *BrowserConverter) { c.remoteURL = url }
}

// WithBrowserTimeout bounds each call. Zero disables the limit.
func WithBrowserTimeout(d time.Duration) BrowserOption {
	return func(c *BrowserConverter) { c.timeout = d }
}

// WithBrowserQuality sets the canvas encoder quality (1..100).
func WithBrowserQuality(q int) BrowserOption {
	return func(c *BrowserConverter) {
		if q >= 1 && q <= 100 {
			c.quality = float64(q) / 100
		}
	}
}

// NewBrowserConverter starts (or attaches to) a browser. It returns ErrBackendUnavailable
// when no browser can be reached.
func NewBrowserConverter(ctx context.Context, opts ...BrowserOption) (*BrowserConverter, error) {
	c := &BrowserConverter{
		timeout: 30 * time.Second,
		quality: float64(defaultQuality) / 100,
	}
	for _, opt := range opts {
		opt(c)
	}

	// The browser outlives the constructor's context; Close ends it.
	parent := context.WithoutCancel(ctx)

	var (
		allocCtx    context.Context
		cancelAlloc context.CancelFunc
	)
	if c.remoteURL != "" {
		allocCtx, cancelAlloc = chromedp.NewRemoteAllocator(parent, c.remoteURL)
	} else {
		allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)
		allocCtx, cancelAlloc = chromedp.NewExecAllocator(parent, allocOpts...)
	}

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	c.browserCtx = browserCtx
	c.cancel = func() {
		cancelBrowser()
		cancelAlloc()
	}

	// Run with no actions launches the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		c.cancel()
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return c, nil
}

func (c *BrowserConverter) Name() string { return BackendBrowser }

// Close shuts the browser down (or detaches from a remote one).
func (c *BrowserConverter) Close() error {
	c.closeOnce.Do(c.cancel)
	return nil
}

// Convert implements Converter.
func (c *BrowserConverter) Convert(ctx context.Context, in *datauri.File, target Format) (*datauri.File, error) {
	if in == nil || len(in.Data) == 0 {
		return nil, ErrNilImage
	}

	expr, err := script(convertScript, datauri.Encode(in.Data, in.MIMEType), target.MIMEType, c.quality)
	if err != nil {
		return nil, err
	}

	var uri string
	if err := c.eval(ctx, expr, &uri); err != nil {
		return nil, err
	}

	out, err := datauri.Decode(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if len(out.Data) == 0 {
		return nil, ErrEncode
	}

	return output(in, target, out.Data), nil
}

// Dimensions loads the image in the page and returns its natural size.
func (c *BrowserConverter) Dimensions(ctx context.Context, in *datauri.File) (Size, error) {
	if in == nil || len(in.Data) == 0 {
		return Size{}, ErrNilImage
	}

	expr, err := script(dimensionsScript, datauri.Encode(in.Data, in.MIMEType))
	if err != nil {
		return Size{}, err
	}

	var size Size
	if err := c.eval(ctx, expr, &size); err != nil {
		return Size{}, err
	}
	return size, nil
}

// IsValidURL reports whether the browser can load an image from url.
func (c *BrowserConverter) IsValidURL(ctx context.Context, url string) bool {
	if strings.TrimSpace(url) == "" {
		return false
	}

	expr, err := script(validURLScript, url)
	if err != nil {
		return false
	}

	var ok bool
	if err := c.eval(ctx, expr, &ok); err != nil {
		return false
	}
	return ok
}

// eval runs expr in a fresh tab and waits for its promise.
func (c *BrowserConverter) eval(ctx context.Context, expr string, res any) error {
	tabCtx, closeTab := chromedp.NewContext(c.browserCtx)
	defer closeTab()

	// Honor the caller's cancellation as well as the browser's lifetime.
	stop := context.AfterFunc(ctx, closeTab)
	defer stop()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithTimeout(tabCtx, c.timeout)
		defer cancel()
	}

	err := chromedp.Run(tabCtx, chromedp.Evaluate(expr, res, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
		return p.WithAwaitPromise(true)
	}))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return classifyScriptError(err)
	}
	return nil
}

// script substitutes JSON-encoded args into a page script.
func script(tmpl string, args ...any) (string, error) {
	encoded := make([]string, len(args))
	for i, arg := range args {
		b, err := json.Marshal(arg)
		if err != nil {
			return "", fmt.Errorf("imageconv: encode script argument: %w", err)
		}
		encoded[i] = string(b)
	}
	return strings.Replace(tmpl, "__ARGS__", strings.Join(encoded, ", "), 1), nil
}

func classifyScriptError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, markerDecode):
		return fmt.Errorf("%w: %v", ErrDecode, err)
	case strings.Contains(msg, markerEncode):
		return fmt.Errorf("%w: %v", ErrEncode, err)
	case strings.Contains(msg, markerType):
		return fmt.Errorf("%w: browser cannot encode target type", ErrUnsupportedType)
	default:
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
}
