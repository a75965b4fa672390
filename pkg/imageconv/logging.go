package imageconv

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrymomot/contentkit/pkg/datauri"
	"github.com/dmitrymomot/contentkit/pkg/logger"
)

type logged struct {
	next Converter
	log  *slog.Logger
}

// Logged logs each conversion at debug level and each failure at warn level.
func Logged(next Converter, l *slog.Logger, backend string) Converter {
	return &logged{
		next: next,
		log:  logger.OrDiscard(l).With(logger.Component("imageconv"), logger.Backend(backend)),
	}
}

func (c *logged) Convert(ctx context.Context, in *datauri.File, target Format) (*datauri.File, error) {
	start := time.Now()
	out, err := c.next.Convert(ctx, in, target)

	attrs := []slog.Attr{
		slog.String("target", target.MIMEType),
		logger.Duration(time.Since(start)),
	}
	if in != nil {
		attrs = append(attrs, logger.MIMEType(in.MIMEType), logger.Bytes(in.Size()))
	}

	if err != nil {
		c.log.LogAttrs(ctx, slog.LevelWarn, "image conversion failed", append(attrs, logger.Error(err))...)
		return nil, err
	}

	c.log.LogAttrs(ctx, slog.LevelDebug, "image converted",
		append(attrs, slog.String("output_size", humanSize(out)))...)
	return out, nil
}

func humanSize(f *datauri.File) string {
	if f == nil {
		return humanize.Bytes(0)
	}
	return humanize.Bytes(uint64(f.Size()))
}
