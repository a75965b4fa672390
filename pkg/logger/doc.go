// Package logger provides a small factory around log/slog plus attribute helpers used
// across contentkit.
//
// New builds a *slog.Logger from functional options (format, level, output, static
// attributes, context extractors). The handler is wrapped in LogHandlerDecorator so values
// stored in a context.Context, such as a request id, are added to every record logged
// with that context.
//
// Library packages never create their own output: they accept a *slog.Logger and fall back
// to Discard when none is given.
//
// # Usage
//
//	log := logger.New(logger.WithEnvironment(os.Getenv("APP_ENV"), "webpify"))
//	log.Info("converted image",
//		logger.Backend("native"),
//		logger.MIMEType("image/webp"),
//		logger.Bytes(int64(len(out))),
//	)
//
// Error returns an empty attribute for a nil error, so it can be passed unconditionally.
package logger
