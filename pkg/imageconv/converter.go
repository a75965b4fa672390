package imageconv

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/contentkit/pkg/datauri"
)

// Converter re-encodes one image into a target format.
type Converter interface {
	Convert(ctx context.Context, in *datauri.File, target Format) (*datauri.File, error)
}

// Size is the natural pixel size of an image.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Backend is a complete image capability set: conversion, dimension probing and
// URL probing. Both implementations are interchangeable from the caller's side.
type Backend interface {
	Converter
	Dimensions(ctx context.Context, in *datauri.File) (Size, error)
	IsValidURL(ctx context.Context, url string) bool
	Name() string
	Close() error
}

// Backend names.
const (
	BackendAuto    = "auto"
	BackendNative  = "native"
	BackendBrowser = "browser"
)

// Config selects and tunes the backend.
type Config struct {
	// Backend is "native", "browser" or "auto". Auto selects the browser backend
	// when ChromeURL is set and the native backend otherwise.
	Backend   string        `env:"IMAGE_BACKEND" envDefault:"auto"`
	ChromeURL string        `env:"IMAGE_CHROME_URL"` // DevTools websocket URL of a running browser
	Quality   int           `env:"IMAGE_WEBP_QUALITY" envDefault:"80"`
	Lossless  bool          `env:"IMAGE_WEBP_LOSSLESS" envDefault:"false"`
	Timeout   time.Duration `env:"IMAGE_TIMEOUT" envDefault:"30s"`
	CacheSize int           `env:"IMAGE_CACHE_SIZE" envDefault:"0"`
}

// Option configures New.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	httpClient *http.Client
}

// WithLogger logs every conversion through l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics registers conversion metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithHTTPClient sets the client used by the native URL probe.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// Service is the configured backend plus its conversion decorators.
// Convert goes through the decorators; probes go straight to the backend.
type Service struct {
	Backend
	converter Converter
}

// Convert implements Converter.
func (s *Service) Convert(ctx context.Context, in *datauri.File, target Format) (*datauri.File, error) {
	return s.converter.Convert(ctx, in, target)
}

// New picks the backend described by cfg once, at construction time.
func New(ctx context.Context, cfg Config, opts ...Option) (*Service, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	backend, err := newBackend(ctx, cfg, o)
	if err != nil {
		return nil, err
	}

	var conv Converter = backend
	if cfg.CacheSize > 0 {
		if conv, err = Cached(conv, cfg.CacheSize); err != nil {
			_ = backend.Close()
			return nil, err
		}
	}
	if o.registerer != nil {
		if conv, err = Instrument(conv, o.registerer, backend.Name()); err != nil {
			_ = backend.Close()
			return nil, err
		}
	}
	if o.logger != nil {
		conv = Logged(conv, o.logger, backend.Name())
	}

	return &Service{Backend: backend, converter: conv}, nil
}

// SelectBackend resolves "auto" to a concrete backend name.
func SelectBackend(cfg Config) (string, error) {
	switch name := strings.ToLower(strings.TrimSpace(cfg.Backend)); name {
	case "", BackendAuto:
		if cfg.ChromeURL != "" {
			return BackendBrowser, nil
		}
		return BackendNative, nil
	case BackendNative, BackendBrowser:
		return name, nil
	default:
		return "", fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
	}
}

func newBackend(ctx context.Context, cfg Config, o *options) (Backend, error) {
	name, err := SelectBackend(cfg)
	if err != nil {
		return nil, err
	}

	switch name {
	case BackendBrowser:
		bopts := []BrowserOption{WithBrowserQuality(cfg.Quality)}
		if cfg.ChromeURL != "" {
			bopts = append(bopts, WithRemoteURL(cfg.ChromeURL))
		}
		if cfg.Timeout > 0 {
			bopts = append(bopts, WithBrowserTimeout(cfg.Timeout))
		}
		return NewBrowserConverter(ctx, bopts...)
	default:
		nopts := []NativeOption{WithQuality(cfg.Quality), WithLossless(cfg.Lossless)}
		if o.httpClient != nil {
			nopts = append(nopts, WithProbeClient(o.httpClient))
		} else if cfg.Timeout > 0 {
			nopts = append(nopts, WithProbeClient(&http.Client{Timeout: cfg.Timeout}))
		}
		return NewNativeConverter(nopts...), nil
	}
}
