// Package stats provides generation history tracking.
//
// Only metadata is recorded: category, item count, elapsed time, finish
// time and the requesting client. Generated items are never stored.
package stats

import (
	"sync"
	"time"

	"github.com/rampantspark/genpass/internal/engine"
)

// ClientCLI is the client label for generations started from the command line.
const ClientCLI = "cli"

// GenerationInfo holds information about a single generation run.
type GenerationInfo struct {
	Category   string        `json:"category"`   // Category name
	Count      uint          `json:"count"`      // Items generated
	Elapsed    time.Duration `json:"elapsed"`    // Generation duration
	FinishedAt time.Time     `json:"finishedAt"` // End of the run
	Client     string        `json:"client"`     // Client IP or ClientCLI
}

// FromResult builds a GenerationInfo from a finished result.
func FromResult(res *engine.Result, client string) GenerationInfo {
	return GenerationInfo{
		Category:   res.Category.String(),
		Count:      res.Count,
		Elapsed:    res.Elapsed,
		FinishedAt: res.Finished,
		Client:     client,
	}
}

// Summary holds aggregated totals over all recorded generations.
type Summary struct {
	StartTime        time.Time `json:"startTime"`        // First use of the store
	TotalGenerations int       `json:"totalGenerations"` // Recorded runs
	TotalItems       int64     `json:"totalItems"`       // Items across all runs
	LastGeneration   time.Time `json:"lastGeneration"`   // Zero if nothing recorded
}

// CountEntry represents a category and its totals in sorted order.
type CountEntry struct {
	Label       string `json:"label"`
	Generations int    `json:"generations"`
	Items       int64  `json:"items"`
}

// History holds generation statistics in memory.
type History struct {
	Mu         sync.RWMutex           // Mutex for thread-safe access
	Totals     Summary                // Running totals
	Categories map[string]*CountEntry // Totals per category
	Recent     []GenerationInfo       // Recent generations, oldest first
	MaxRecent  int                    // Maximum number of recent generations to keep
}

// NewHistory creates and initializes a new History instance.
func NewHistory() *History {
	return &History{
		Totals:     Summary{StartTime: time.Now()},
		Categories: make(map[string]*CountEntry),
		Recent:     make([]GenerationInfo, 0),
		MaxRecent:  100, // Keep last 100 generations
	}
}
