// Package imageconv re-encodes images, WebP being the canonical target.
//
// Two interchangeable backends implement Backend:
//
//   - NativeConverter decodes in memory (disintegration/imaging over the stdlib and
//     golang.org/x/image decoders) and encodes WebP through libwebp.
//   - BrowserConverter draws the image onto a canvas in headless Chrome (chromedp) and
//     exports it with canvas.toBlob.
//
// New picks one once, from Config, and stacks the optional decorators on top of it:
//
//	var cfg imageconv.Config
//	config.MustLoad(&cfg)
//
//	svc, err := imageconv.New(ctx, cfg,
//		imageconv.WithLogger(log),
//		imageconv.WithMetrics(prometheus.DefaultRegisterer),
//	)
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	uri, err := imageconv.ToWebPDataURI(ctx, svc, input)
//
// Failures are explicit errors. Use IsMalformed and IsBackendFailure, or errors.Is with
// the sentinels in errors.go, to tell bad input from a broken backend.
package imageconv
