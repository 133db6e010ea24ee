package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Database handles SQLite persistence for generation history.
type Database struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *slog.Logger
}

// Times are stored as unix nanoseconds so ordering and round trips do not
// depend on the driver's time formatting.
const schema = `
CREATE TABLE IF NOT EXISTS totals (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    start_time INTEGER NOT NULL,
    total_generations INTEGER NOT NULL DEFAULT 0,
    total_items INTEGER NOT NULL DEFAULT 0,
    last_generation INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS category_counts (
    category TEXT PRIMARY KEY CHECK(length(category) <= 32 AND length(category) > 0),
    generations INTEGER NOT NULL DEFAULT 1 CHECK(generations > 0),
    items INTEGER NOT NULL DEFAULT 0 CHECK(items >= 0),
    first_seen INTEGER NOT NULL,
    last_seen INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_category_generations ON category_counts(generations DESC);

CREATE TABLE IF NOT EXISTS generation_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category TEXT NOT NULL CHECK(length(category) <= 32 AND length(category) > 0),
    count INTEGER NOT NULL CHECK(count >= 0),
    elapsed_ns INTEGER NOT NULL CHECK(elapsed_ns >= 0),
    finished_at INTEGER NOT NULL,
    client TEXT NOT NULL CHECK(length(client) <= 64)
);
CREATE INDEX IF NOT EXISTS idx_generation_finished ON generation_log(finished_at DESC);
`

// NewDatabase creates a new database connection and initializes the schema.
//
// The parent directory of dbPath is created if needed.
func NewDatabase(dbPath string, logger *slog.Logger) (*Database, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []struct {
		stmt string
		what string
	}{
		{"PRAGMA journal_mode=WAL", "enable WAL mode"},
		{"PRAGMA synchronous=NORMAL", "set synchronous mode"},
		{"PRAGMA busy_timeout=5000", "set busy timeout"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to %s: %w", p.what, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO totals (id, start_time, total_generations, total_items, last_generation)
		VALUES (1, ?, 0, 0, 0)
	`, time.Now().UnixNano())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize totals: %w", err)
	}

	logger.Debug("Database initialized", "path", dbPath)

	return &Database{
		db:     db,
		logger: logger,
	}, nil
}

// RecordGeneration records a generation run in the database.
//
// The log entry, the category totals and the overall totals are updated in
// one transaction.
func (d *Database) RecordGeneration(ctx context.Context, info GenerationInfo) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	finished := info.FinishedAt.UnixNano()
	count := int64(info.Count)
	elapsed := max(info.Elapsed.Nanoseconds(), 0)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO generation_log (category, count, elapsed_ns, finished_at, client)
		VALUES (?, ?, ?, ?, ?)
	`, info.Category, count, elapsed, finished, info.Client)
	if err != nil {
		return fmt.Errorf("failed to insert generation log: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO category_counts (category, generations, items, first_seen, last_seen)
		VALUES (?, 1, ?, ?, ?)
		ON CONFLICT(category) DO UPDATE SET
			generations = generations + 1,
			items = items + excluded.items,
			last_seen = excluded.last_seen
	`, info.Category, count, finished, finished)
	if err != nil {
		return fmt.Errorf("failed to update category count: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE totals
		SET total_generations = total_generations + 1,
		    total_items = total_items + ?,
		    last_generation = MAX(last_generation, ?)
		WHERE id = 1
	`, count, finished)
	if err != nil {
		return fmt.Errorf("failed to update totals: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetSummary retrieves the aggregated totals.
func (d *Database) GetSummary(ctx context.Context) (Summary, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var start, last int64
	var summary Summary
	err := d.db.QueryRowContext(ctx, `
		SELECT start_time, total_generations, total_items, last_generation
		FROM totals
		WHERE id = 1
	`).Scan(&start, &summary.TotalGenerations, &summary.TotalItems, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return Summary{}, fmt.Errorf("totals row missing")
	}
	if err != nil {
		return Summary{}, fmt.Errorf("failed to query totals: %w", err)
	}

	summary.StartTime = time.Unix(0, start)
	if last > 0 {
		summary.LastGeneration = time.Unix(0, last)
	}
	return summary, nil
}

// GetCategoryCounts retrieves per-category totals, most generated first.
func (d *Database) GetCategoryCounts(ctx context.Context) ([]CountEntry, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rows, err := d.db.QueryContext(ctx, `
		SELECT category, generations, items
		FROM category_counts
		ORDER BY generations DESC, category ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category counts: %w", err)
	}
	defer rows.Close()

	var result []CountEntry
	for rows.Next() {
		var entry CountEntry
		if err := rows.Scan(&entry.Label, &entry.Generations, &entry.Items); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}

	return result, nil
}

// GetRecent retrieves the most recent generations, newest first.
func (d *Database) GetRecent(ctx context.Context, limit int) ([]GenerationInfo, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rows, err := d.db.QueryContext(ctx, `
		SELECT category, count, elapsed_ns, finished_at, client
		FROM generation_log
		ORDER BY finished_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent generations: %w", err)
	}
	defer rows.Close()

	var result []GenerationInfo
	for rows.Next() {
		var info GenerationInfo
		var count, elapsed, finished int64
		if err := rows.Scan(&info.Category, &count, &elapsed, &finished, &info.Client); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		info.Count = uint(count)
		info.Elapsed = time.Duration(elapsed)
		info.FinishedAt = time.Unix(0, finished)
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generations: %w", err)
	}

	return result, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
