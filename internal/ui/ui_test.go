package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rampantspark/genpass/internal/category"
	"github.com/rampantspark/genpass/internal/engine"
	"github.com/rampantspark/genpass/internal/stats"
)

func TestBuildRateLimitSummary(t *testing.T) {
	tests := []struct {
		rate, burst int
		want        string
	}{
		{0, 20, "Disabled"},
		{-1, 0, "Disabled"},
		{10, 20, "10 req/sec (burst: 20)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BuildRateLimitSummary(tt.rate, tt.burst))
	}
}

func TestBuildHistorySummary(t *testing.T) {
	assert.Equal(t, "In memory (not persisted)", BuildHistorySummary(false, "/tmp/h.db"))
	assert.Equal(t, "In memory (not persisted)", BuildHistorySummary(true, ""))
	assert.Equal(t, "SQLite database - /tmp/h.db", BuildHistorySummary(true, "/tmp/h.db"))
}

func TestRenderStartupInfo(t *testing.T) {
	info := StartupInfo{
		URL:          "http://localhost:8000",
		History:      "In memory (not persisted)",
		RateLimit:    "Disabled",
		MaxCount:     500,
		PreviewLimit: 1000,
		StartedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	out := RenderStartupInfo(info)
	assert.Contains(t, out, "http://localhost:8000")
	assert.Contains(t, out, "500 items")
	assert.Contains(t, out, "first 1000 items")
	assert.Contains(t, out, "2024-01-02 03:04:05")
	assert.NotContains(t, out, "ADMIN ACCESS")

	info.AdminLoginURL = "http://localhost:8000/abc/login?token=xyz"
	info.AdminURL = "http://localhost:8000/abc"
	out = RenderStartupInfo(info)
	assert.Contains(t, out, "ADMIN ACCESS")
	assert.Contains(t, out, info.AdminLoginURL)
}

func TestPrintHelpers(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	PrintShutdown(&buf)
	PrintShutdownComplete(&buf)
	PrintError(&buf, "Failed to start server", errors.New("address in use"))

	out := buf.String()
	assert.Contains(t, out, "shutting down")
	assert.Contains(t, out, "stopped successfully")
	assert.Contains(t, out, "ERROR: Failed to start server")
	assert.Contains(t, out, "address in use")
}

func TestCategoriesTable(t *testing.T) {
	out := CategoriesTable()
	for _, c := range category.All() {
		assert.Contains(t, out, c.String())
	}
	assert.Contains(t, out, "a-z weighted by letter frequency")
	assert.Contains(t, out, "0-9a-zA-Z!@#$%^&*()-_=+[]")
	assert.Contains(t, out, "12-20")
	assert.Contains(t, out, "78")
}

func TestHistoryTables(t *testing.T) {
	recent := []stats.GenerationInfo{{
		Category:   "pin6",
		Count:      42,
		Elapsed:    2500 * time.Microsecond,
		FinishedAt: time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local),
		Client:     stats.ClientCLI,
	}}
	out := HistoryTable(recent)
	assert.Contains(t, out, "pin6")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "0.0025s")
	assert.Contains(t, out, "2024-05-06 07:08:09")

	counts := CategoryCountsTable([]stats.CountEntry{{Label: "username", Generations: 3, Items: 300}})
	assert.Contains(t, counts, "username")
	assert.Contains(t, counts, "300")

	empty := HistoryTable(nil)
	assert.Contains(t, empty, "Category")
}

func TestSummaryLine(t *testing.T) {
	assert.Contains(t, SummaryLine(stats.Summary{}), "0 generations, 0 items, last never")

	s := stats.Summary{TotalGenerations: 2, TotalItems: 20, LastGeneration: time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)}
	assert.Contains(t, SummaryLine(s), "2 generations, 20 items, last 2024-01-01 00:00:00")
}

func TestGenerateSummary(t *testing.T) {
	res := &engine.Result{Category: category.PIN4, Count: 3, ElapsedText: "0.0001s"}

	out := GenerateSummary(res, "")
	assert.Contains(t, out, "3 pin4 in 0.0001s")
	assert.False(t, strings.Contains(out, "→"))

	out = GenerateSummary(res, "/tmp/pin4_1.txt")
	assert.Contains(t, out, "/tmp/pin4_1.txt")
}
