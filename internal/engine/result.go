package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rampantspark/genpass/internal/category"
)

// Result is the output of one generation run.
type Result struct {
	Category category.Category
	Count    uint

	// Raw holds every item, one per newline-terminated line.
	Raw string
	// Preview holds the first PreviewItems items, each followed by PreviewBreak.
	Preview      string
	PreviewItems int

	Started  time.Time
	Finished time.Time
	Elapsed  time.Duration

	// ElapsedText is Elapsed in decimal seconds with an "s" suffix.
	ElapsedText string
	// TimestampText is Finished in whole seconds since the Unix epoch.
	TimestampText string
}

// Items splits Raw into its items.
func (r *Result) Items() []string {
	if r.Raw == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(r.Raw, "\n"), "\n")
}

// FormatElapsed renders d as decimal seconds followed by "s", for example
// "0.00125s" or "2s". Negative durations render as "0s".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	sec := d / time.Second
	frac := d % time.Second
	if frac == 0 {
		return strconv.FormatInt(int64(sec), 10) + "s"
	}
	s := fmt.Sprintf("%d.%09d", sec, frac)
	return strings.TrimRight(s, "0") + "s"
}

// FormatTimestamp renders t as whole seconds since the Unix epoch.
func FormatTimestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
