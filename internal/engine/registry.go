package engine

import (
	"sync"

	"github.com/rampantspark/genpass/internal/category"
)

// Registry keeps the result of the most recent successful run for hosts
// that read buffers back after generating.
//
// A run is published whole once it completes, so readers never observe a
// mix of old and new fields. A failed run leaves the previous result in
// place. Before the first run every text field is empty and the category
// is Username.
type Registry struct {
	engine *Engine

	mu   sync.RWMutex
	last Result
}

// NewRegistry creates a Registry that generates with engine.
func NewRegistry(engine *Engine) *Registry {
	return &Registry{engine: engine}
}

// Generate runs the engine and, on success, replaces the stored result.
func (r *Registry) Generate(c category.Category, n uint) (*Result, error) {
	res, err := r.engine.Generate(c, n)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.last = *res
	r.mu.Unlock()
	return res, nil
}

// Last returns a copy of the stored result.
func (r *Registry) Last() Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}

// HasResult reports whether any run has completed.
func (r *Registry) HasResult() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.last.Finished.IsZero()
}

// LastCategory returns the category of the stored result.
func (r *Registry) LastCategory() category.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last.Category
}

// Raw returns the stored raw buffer.
func (r *Registry) Raw() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last.Raw
}

// Preview returns the stored preview buffer.
func (r *Registry) Preview() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last.Preview
}

// ElapsedText returns the stored elapsed-time text.
func (r *Registry) ElapsedText() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last.ElapsedText
}

// LastTimestampText returns the stored end-of-run timestamp text.
func (r *Registry) LastTimestampText() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last.TimestampText
}
