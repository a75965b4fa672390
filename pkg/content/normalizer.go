package content

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/contentkit/pkg/async"
	"github.com/dmitrymomot/contentkit/pkg/datauri"
	"github.com/dmitrymomot/contentkit/pkg/imageconv"
	"github.com/dmitrymomot/contentkit/pkg/logger"
)

// FailurePolicy decides what replaces a reference whose conversion failed.
type FailurePolicy int

const (
	// FailureNull replaces the reference with NullReplacement.
	FailureNull FailurePolicy = iota
	// FailureKeepOriginal leaves the reference untouched.
	FailureKeepOriginal
)

// NullReplacement is substituted for failed references under FailureNull.
const NullReplacement = "null"

// Result is the outcome for one distinct reference.
type Result struct {
	Ref         string
	Replacement string // what was substituted; equals Ref when it was kept
	Err         error
}

// Report lists one Result per distinct reference, in first-seen order.
type Report struct {
	Results []Result
}

// Converted is the number of references successfully normalized.
func (r Report) Converted() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed is the number of references whose conversion failed.
func (r Report) Failed() int {
	return len(r.Results) - r.Converted()
}

// Err joins every conversion error, or returns nil.
func (r Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%.48s…: %w", res.Ref, res.Err))
		}
	}
	return errors.Join(errs...)
}

// Normalizer replaces embedded base64 images with their normalized form.
// It is safe for concurrent use if its converter is.
type Normalizer struct {
	conv   imageconv.Converter
	target imageconv.Format
	policy FailurePolicy
	log    *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithTarget sets the output format. Defaults to imageconv.DefaultFormat.
func WithTarget(f imageconv.Format) Option {
	return func(n *Normalizer) { n.target = f }
}

// WithFailurePolicy sets what failed references are replaced with.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(n *Normalizer) { n.policy = p }
}

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Normalizer) { n.log = logger.OrDiscard(l) }
}

// NewNormalizer panics if conv is nil.
func NewNormalizer(conv imageconv.Converter, opts ...Option) *Normalizer {
	if conv == nil {
		panic(ErrNilConverter)
	}
	n := &Normalizer{
		conv:   conv,
		target: imageconv.DefaultFormat,
		policy: FailureNull,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.log = n.log.With(logger.Component("content"))
	return n
}

// ReplaceBase64Images converts every distinct embedded data URI concurrently, waits for
// all of them, and replaces every occurrence of each reference with its result.
// Content without references is returned unchanged.
func (n *Normalizer) ReplaceBase64Images(ctx context.Context, content string) (string, Report) {
	refs := datauri.Extract(content)
	if len(refs) == 0 {
		return content, Report{}
	}

	start := time.Now()
	outcomes := async.Map(ctx, refs, func(ctx context.Context, ref string) (string, error) {
		return imageconv.ConvertDataURI(ctx, n.conv, ref, n.target)
	})

	report := Report{Results: make([]Result, len(refs))}
	for i, ref := range refs {
		res := Result{Ref: ref, Replacement: outcomes[i].Value, Err: outcomes[i].Err}
		if res.Err != nil {
			res.Replacement = n.fallback(ref)
			n.log.WarnContext(ctx, "embedded image not normalized",
				logger.MIMEType(mimeOf(ref)),
				logger.Error(res.Err),
			)
		}
		report.Results[i] = res
	}

	out := substitute(content, report.Results)

	n.log.DebugContext(ctx, "embedded images normalized",
		logger.Count(len(refs)),
		slog.Int("failed", report.Failed()),
		logger.Duration(time.Since(start)),
	)

	return out, report
}

func (n *Normalizer) fallback(ref string) string {
	if n.policy == FailureKeepOriginal {
		return ref
	}
	return NullReplacement
}

// substitute replaces all occurrences of every reference in a single pass.
// A reference can be a prefix of a longer one, so longer references take priority.
func substitute(content string, results []Result) string {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b Result) int {
		return cmp.Compare(len(b.Ref), len(a.Ref))
	})

	pairs := make([]string, 0, 2*len(sorted))
	for _, res := range sorted {
		if res.Replacement == res.Ref {
			continue
		}
		pairs = append(pairs, res.Ref, res.Replacement)
	}
	if len(pairs) == 0 {
		return content
	}
	return strings.NewReplacer(pairs...).Replace(content)
}

func mimeOf(ref string) string {
	mt, _, _ := strings.Cut(strings.TrimPrefix(ref, "data:"), ";")
	return mt
}
