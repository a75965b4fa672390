package imageconv

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/contentkit/pkg/datauri"
)

// Outcome label values.
const (
	outcomeOK        = "ok"
	outcomeMalformed = "malformed"
	outcomeFailed    = "failed"
)

type instrumented struct {
	next     Converter
	backend  string
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	bytesIn  *prometheus.CounterVec
}

// Instrument records conversions in reg: count and latency by backend, target
// format and outcome, plus input bytes by backend.
// Collectors already registered in reg are reused, so several converters may share one registry.
func Instrument(next Converter, reg prometheus.Registerer, backend string) (Converter, error) {
	total, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imageconv_conversions_total",
			Help: "Total number of image conversions.",
		},
		[]string{"backend", "format", "outcome"},
	))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "imageconv_conversion_duration_seconds",
			Help:    "Duration of image conversions.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"backend", "format", "outcome"},
	))
	if err != nil {
		return nil, err
	}

	bytesIn, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imageconv_input_bytes_total",
			Help: "Total number of image bytes submitted for conversion.",
		},
		[]string{"backend"},
	))
	if err != nil {
		return nil, err
	}

	return &instrumented{
		next:     next,
		backend:  backend,
		total:    total,
		duration: duration,
		bytesIn:  bytesIn,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

func (m *instrumented) Convert(ctx context.Context, in *datauri.File, target Format) (*datauri.File, error) {
	start := time.Now()
	out, err := m.next.Convert(ctx, in, target)

	outcome := outcomeOK
	switch {
	case err == nil:
	case IsMalformed(err):
		outcome = outcomeMalformed
	default:
		outcome = outcomeFailed
	}

	m.total.WithLabelValues(m.backend, target.Extension, outcome).Inc()
	m.duration.WithLabelValues(m.backend, target.Extension, outcome).Observe(time.Since(start).Seconds())
	if in != nil {
		m.bytesIn.WithLabelValues(m.backend).Add(float64(len(in.Data)))
	}

	return out, err
}
