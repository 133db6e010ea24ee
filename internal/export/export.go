// Package export writes generated items to files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rampantspark/genpass/internal/category"
	"github.com/rampantspark/genpass/internal/engine"
)

// ErrNothingToSave is returned when a result has no items to write.
var ErrNothingToSave = errors.New("no data available to save")

// Filename returns the download name for a run, "<category>_<timestamp>.txt".
func Filename(c category.Category, timestampText string) string {
	return c.String() + "_" + timestampText + ".txt"
}

// Empty reports whether raw output holds nothing but whitespace.
func Empty(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

// Write copies the raw buffer of res to w.
func Write(w io.Writer, res *engine.Result) error {
	if Empty(res.Raw) {
		return ErrNothingToSave
	}
	if _, err := io.WriteString(w, res.Raw); err != nil {
		return fmt.Errorf("failed to write items: %w", err)
	}
	return nil
}

// Save writes the raw buffer of res into dir under Filename.
//
// The file is written to a temporary name and renamed into place, so a
// reader never sees a partial file.
//
// Returns the path of the written file.
func Save(dir string, res *engine.Result) (string, error) {
	if Empty(res.Raw) {
		return "", ErrNothingToSave
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(res.Category, res.TimestampText))
	tmpFile, err := os.CreateTemp(dir, "genpass-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := Write(tmpFile, res); err != nil {
		return "", err
	}
	if err := tmpFile.Chmod(0o600); err != nil {
		return "", fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
