// Command webpify normalizes the base64 images embedded in an HTML document.
//
//	webpify [options] [file]
//
// The document is read from file, or stdin when no file is given. Backend, quality and
// storage settings come from the environment (IMAGE_*, MEDIA_*); see .env.example.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/contentkit/pkg/config"
	"github.com/dmitrymomot/contentkit/pkg/content"
	"github.com/dmitrymomot/contentkit/pkg/imageconv"
	"github.com/dmitrymomot/contentkit/pkg/logger"
	"github.com/dmitrymomot/contentkit/pkg/media"
	"github.com/dmitrymomot/contentkit/pkg/sanitizer"
)

// appConfig holds process-level settings read from the environment.
type appConfig struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Storage string `env:"MEDIA_STORAGE" envDefault:"local"`
}

// cliConfig holds parsed command-line options.
type cliConfig struct {
	input    string
	output   string
	format   imageconv.Format
	keep     bool
	safe     bool
	baseURL  string
	upload   string
	timeout  time.Duration
	envFiles []string
}

type envFiles []string

func (e *envFiles) String() string { return fmt.Sprint(*e) }

func (e *envFiles) Set(v string) error {
	*e = append(*e, v)
	return nil
}

func main() {
	output := flag.String("o", "", "Output file (default: stdout)")
	format := flag.String("format", "webp", "Target format: webp, jpeg or png")
	keep := flag.Bool("keep", false, "Keep images that fail to convert instead of replacing them with null")
	safe := flag.Bool("safe", false, "Strip script tags and inline event handlers")
	baseURL := flag.String("base-url", "", "Prefix relative <img> sources with this URL")
	upload := flag.String("upload", "", "Upload normalized images to media storage under this folder")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall processing timeout")
	var files envFiles
	flag.Var(&files, "env", "Load an additional .env file (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: webpify [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Re-encode the base64 images embedded in an HTML document.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	f, ok := imageconv.ParseFormat(*format)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", *format)
		os.Exit(2)
	}

	cfg := cliConfig{
		input:    flag.Arg(0),
		output:   *output,
		format:   f,
		keep:     *keep,
		safe:     *safe,
		baseURL:  *baseURL,
		upload:   *upload,
		timeout:  *timeout,
		envFiles: files,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the main application logic, returning any error.
func run(ctx context.Context, cfg cliConfig, stdin io.Reader, stdout io.Writer) error {
	if err := config.LoadEnvFiles(cfg.envFiles...); err != nil {
		return err
	}

	var app appConfig
	if err := config.Load(&app); err != nil {
		return err
	}
	log := logger.New(
		logger.WithEnvironment(app.Env, "webpify"),
		logger.WithOutput(os.Stderr),
	)

	var imgCfg imageconv.Config
	if err := config.Load(&imgCfg); err != nil {
		return err
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	src, err := readInput(cfg.input, stdin)
	if err != nil {
		return err
	}

	svc, err := imageconv.New(ctx, imgCfg,
		imageconv.WithLogger(log),
		imageconv.WithMetrics(prometheus.NewRegistry()),
	)
	if err != nil {
		return fmt.Errorf("image backend: %w", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Warn("closing image backend", logger.Error(err))
		}
	}()

	policy := content.FailureNull
	if cfg.keep {
		policy = content.FailureKeepOriginal
	}
	normalizer := content.NewNormalizer(svc,
		content.WithTarget(cfg.format),
		content.WithFailurePolicy(policy),
		content.WithLogger(log),
	)

	html, report := normalizer.ReplaceBase64Images(ctx, src)
	log.Info("document normalized",
		logger.Count(len(report.Results)),
		slog.Int("failed", report.Failed()),
	)

	if cfg.upload != "" {
		store, err := newStorage(ctx, app.Storage)
		if err != nil {
			return err
		}
		var hosted content.Report
		html, hosted = content.HostImages(ctx, store, html, cfg.upload)
		if err := hosted.Err(); err != nil {
			log.Warn("some images were not uploaded", logger.Error(err))
		}
	}

	if cfg.baseURL != "" {
		html = content.AddBaseURL(html, cfg.baseURL)
	}
	if cfg.safe {
		html = sanitizer.SafeContent(html)
	}

	return writeOutput(cfg.output, stdout, html)
}

func newStorage(ctx context.Context, kind string) (media.Storage, error) {
	switch kind {
	case "s3":
		var s3cfg media.S3Config
		if err := config.Load(&s3cfg); err != nil {
			return nil, err
		}
		return media.NewS3Storage(ctx, s3cfg)
	case "local", "":
		var localCfg media.LocalConfig
		if err := config.Load(&localCfg); err != nil {
			return nil, err
		}
		return media.NewLocalStorage(localCfg)
	default:
		return nil, fmt.Errorf("%w: unknown media storage %q", media.ErrInvalidConfig, kind)
	}
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

func writeOutput(path string, stdout io.Writer, html string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(stdout, html)
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
