package stats

import (
	"cmp"
	"context"
	"log/slog"
	"net/http"
	"slices"
)

// Manager provides a unified interface for generation history.
//
// It records into the database when one is configured and falls back to
// in-memory history otherwise.
type Manager struct {
	db         *Database
	history    *History
	ipResolver *IPResolver
	logger     *slog.Logger
}

// NewManager creates a new stats manager.
//
// Parameters:
//   - db: optional database instance (nil for in-memory mode)
//   - history: in-memory history used when db is nil; created if nil
//   - trustProxy: whether to trust proxy headers for IP resolution
//   - logger: structured logger instance
func NewManager(db *Database, history *History, trustProxy bool, logger *slog.Logger) *Manager {
	if db == nil && history == nil {
		history = NewHistory()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		db:         db,
		history:    history,
		ipResolver: NewIPResolver(trustProxy),
		logger:     logger,
	}
}

// Persistent reports whether history is stored in a database.
func (m *Manager) Persistent() bool {
	return m.db != nil
}

// RecordGeneration records a finished generation.
//
// Returns an error only if database recording fails.
func (m *Manager) RecordGeneration(ctx context.Context, info GenerationInfo) error {
	if info.Client == "" {
		info.Client = "unknown"
	}

	if m.db != nil {
		if err := m.db.RecordGeneration(ctx, info); err != nil {
			m.logger.Warn("Failed to record generation in database", "error", err)
			return err
		}
		return nil
	}

	m.history.Mu.Lock()
	defer m.history.Mu.Unlock()

	m.history.Totals.TotalGenerations++
	m.history.Totals.TotalItems += int64(info.Count)
	if info.FinishedAt.After(m.history.Totals.LastGeneration) {
		m.history.Totals.LastGeneration = info.FinishedAt
	}

	entry, ok := m.history.Categories[info.Category]
	if !ok {
		entry = &CountEntry{Label: info.Category}
		m.history.Categories[info.Category] = entry
	}
	entry.Generations++
	entry.Items += int64(info.Count)

	m.history.Recent = append(m.history.Recent, info)
	if len(m.history.Recent) > m.history.MaxRecent {
		m.history.Recent = m.history.Recent[1:]
	}

	return nil
}

// GetSummary retrieves the aggregated totals.
func (m *Manager) GetSummary(ctx context.Context) Summary {
	if m.db != nil {
		summary, err := m.db.GetSummary(ctx)
		if err != nil {
			m.logger.Warn("Failed to get summary from database", "error", err)
			return Summary{}
		}
		return summary
	}

	m.history.Mu.RLock()
	defer m.history.Mu.RUnlock()
	return m.history.Totals
}

// GetCategoryCounts retrieves per-category totals, most generated first.
func (m *Manager) GetCategoryCounts(ctx context.Context) []CountEntry {
	if m.db != nil {
		counts, err := m.db.GetCategoryCounts(ctx)
		if err != nil {
			m.logger.Warn("Failed to get category counts from database", "error", err)
			return nil
		}
		return counts
	}

	m.history.Mu.RLock()
	defer m.history.Mu.RUnlock()

	result := make([]CountEntry, 0, len(m.history.Categories))
	for _, entry := range m.history.Categories {
		result = append(result, *entry)
	}
	slices.SortFunc(result, func(a, b CountEntry) int {
		if c := cmp.Compare(b.Generations, a.Generations); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return result
}

// GetRecent retrieves recent generations, newest first.
func (m *Manager) GetRecent(ctx context.Context, limit int) []GenerationInfo {
	if m.db != nil {
		recent, err := m.db.GetRecent(ctx, limit)
		if err != nil {
			m.logger.Warn("Failed to get recent generations from database", "error", err)
			return nil
		}
		return recent
	}

	// In-memory history is kept oldest first
	m.history.Mu.RLock()
	defer m.history.Mu.RUnlock()

	total := len(m.history.Recent)
	if total == 0 {
		return nil
	}

	count := total
	if limit > 0 && limit < total {
		count = limit
	}

	result := make([]GenerationInfo, count)
	for i := 0; i < count; i++ {
		result[i] = m.history.Recent[total-1-i]
	}
	return result
}

// GetClientIP extracts the client IP from a request.
func (m *Manager) GetClientIP(r *http.Request) string {
	return m.ipResolver.GetClientIP(r)
}

// Close closes the database if one is configured.
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
