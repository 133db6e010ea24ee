// Package ui renders terminal output for the command line.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Banner is the ASCII art banner for genpass
const Banner = `
  __ _  ___ _ __  _ __   __ _ ___ ___
 / _' |/ _ \ '_ \| '_ \ / _' / __/ __|
| (_| |  __/ | | | |_) | (_| \__ \__ \
 \__, |\___|_| |_| .__/ \__,_|___/___/
 |___/           |_|
`

var (
	accent       = lipgloss.Color("#C89A3A")
	muted        = lipgloss.Color("#8C8C8C")
	bannerStyle  = lipgloss.NewStyle().Foreground(accent)
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	sectionStyle = lipgloss.NewStyle().Foreground(accent).Bold(true).MarginLeft(2)
	labelStyle   = lipgloss.NewStyle().Foreground(muted).Width(18).MarginLeft(5)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")).MarginLeft(2)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true).MarginLeft(2)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#73C991")).MarginLeft(2)
)

const ruleWidth = 66

func rule() string {
	return ruleStyle.Render(strings.Repeat("━", ruleWidth))
}

// StartupInfo holds configuration information to display at startup
type StartupInfo struct {
	URL           string
	AdminLoginURL string // Empty when the dashboard is disabled
	AdminURL      string
	History       string
	RateLimit     string
	MaxCount      uint
	PreviewLimit  int
	StartedAt     time.Time
}

// PrintBanner prints the ASCII banner
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, bannerStyle.Render(Banner))
	fmt.Fprintln(w)
}

func field(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

// RenderStartupInfo renders a summary of the server configuration
func RenderStartupInfo(info StartupInfo) string {
	lines := []string{
		rule(),
		"  Server started at " + info.StartedAt.Format("2006-01-02 15:04:05"),
		rule(),
		"",
		sectionStyle.Render("SERVER"),
		field("Address:", info.URL),
		field("Rate Limiting:", info.RateLimit),
		"",
		sectionStyle.Render("GENERATION"),
		field("Max Count:", fmt.Sprintf("%d items", info.MaxCount)),
		field("Preview:", fmt.Sprintf("first %d items", info.PreviewLimit)),
		"",
		sectionStyle.Render("HISTORY"),
		field("Storage:", info.History),
		"",
	}

	if info.AdminLoginURL != "" {
		lines = append(lines,
			sectionStyle.Render("ADMIN ACCESS"),
			field("Login URL:", info.AdminLoginURL),
			field("Dashboard:", info.AdminURL),
			"",
			warnStyle.Render("SECURITY WARNING:"),
			"     The login URL above contains a one-time authentication token.",
			"     Keep it secure and rotate logs containing this token.",
			"",
		)
	}

	lines = append(lines,
		rule(),
		"  Press Ctrl+C to stop the server",
		rule(),
		"",
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// PrintStartupInfo prints the startup summary
func PrintStartupInfo(w io.Writer, info StartupInfo) {
	fmt.Fprintln(w, RenderStartupInfo(info))
}

// PrintShutdown prints a shutdown message
func PrintShutdown(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule())
	fmt.Fprintln(w, "  Server shutting down gracefully...")
	fmt.Fprintln(w, rule())
}

// PrintShutdownComplete prints a final shutdown message
func PrintShutdownComplete(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, okStyle.Render("✓ Server stopped successfully"))
	fmt.Fprintln(w)
}

// PrintError prints a formatted error message
func PrintError(w io.Writer, message string, err error) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule())
	fmt.Fprintln(w, errorStyle.Render("ERROR: "+message))
	if err != nil {
		fmt.Fprintf(w, "     %v\n", err)
	}
	fmt.Fprintln(w, rule())
	fmt.Fprintln(w)
}

// BuildRateLimitSummary creates a summary string for rate limiting
func BuildRateLimitSummary(requestsPerSec, burst int) string {
	if requestsPerSec <= 0 {
		return "Disabled"
	}
	return fmt.Sprintf("%d req/sec (burst: %d)", requestsPerSec, burst)
}

// BuildHistorySummary creates a summary string for history storage
func BuildHistorySummary(enabled bool, dbPath string) string {
	switch {
	case !enabled:
		return "In memory (not persisted)"
	case dbPath != "":
		return "SQLite database - " + dbPath
	default:
		return "In memory (not persisted)"
	}
}
