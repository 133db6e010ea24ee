// Package engine generates credential-like items in bulk.
package engine

import (
	"log/slog"
	"time"

	"github.com/rampantspark/genpass/internal/category"
	"github.com/rampantspark/genpass/internal/random"
)

// DefaultPreviewLimit is the number of items kept in the preview buffer.
const DefaultPreviewLimit = 1000

// Engine runs generation requests. It holds no per-run state, so one Engine
// can serve any number of sequential or concurrent runs.
type Engine struct {
	previewLimit int
	newSource    func() random.Uniform
	now          func() time.Time
	logger       *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPreviewLimit sets how many items the preview buffer keeps.
// Negative values are treated as zero.
func WithPreviewLimit(n int) Option {
	return func(e *Engine) {
		if n < 0 {
			n = 0
		}
		e.previewLimit = n
	}
}

// WithSourceFactory replaces the per-run random source constructor.
func WithSourceFactory(f func() random.Uniform) Option {
	return func(e *Engine) {
		e.newSource = f
	}
}

// WithClock replaces the wall clock used for timing.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLogger sets the logger for run summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine. By default it keeps DefaultPreviewLimit preview
// items, seeds a fresh random.Source from OS entropy for every run and
// times runs with time.Now.
func New(opts ...Option) *Engine {
	e := &Engine{
		previewLimit: DefaultPreviewLimit,
		newSource:    func() random.Uniform { return random.New() },
		now:          time.Now,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PreviewLimit returns the configured preview cap.
func (e *Engine) PreviewLimit() int {
	return e.previewLimit
}

// Generate produces n items of category c.
//
// The category is validated before anything else happens; an invalid one
// returns an error wrapping category.ErrInvalidCategory. Every other input,
// including n == 0, succeeds. One random source is built per call and
// shared by every length and character draw of the run.
func (e *Engine) Generate(c category.Category, n uint) (*Result, error) {
	policy, err := category.PolicyFor(c)
	if err != nil {
		return nil, err
	}

	start := e.now()
	rng := e.newSource()
	out := newSinks(e.previewLimit, n, policy.Length.Max)

	item := make([]byte, 0, policy.Length.Max)
	for i := uint(0); i < n; i++ {
		item = item[:0]
		size := policy.Length.Draw(rng)
		for j := 0; j < size; j++ {
			item = append(item, policy.Source.Pick(rng))
		}
		out.write(item)
	}

	end := e.now()
	elapsed := end.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}

	res := &Result{
		Category:      c,
		Count:         n,
		Raw:           out.raw.String(),
		Preview:       out.preview.String(),
		PreviewItems:  out.previewItems,
		Started:       start,
		Finished:      end,
		Elapsed:       elapsed,
		ElapsedText:   FormatElapsed(elapsed),
		TimestampText: FormatTimestamp(end),
	}

	e.logger.Debug("Generated items",
		"category", c.String(),
		"count", n,
		"preview_items", res.PreviewItems,
		"elapsed", res.ElapsedText,
	)
	return res, nil
}
