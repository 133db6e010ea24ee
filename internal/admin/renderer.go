package admin

import (
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/rampantspark/genpass/internal/engine"
	"github.com/rampantspark/genpass/internal/stats"
)

// Dashboard holds what the history page shows.
type Dashboard struct {
	Summary    stats.Summary
	Categories []stats.CountEntry
	Recent     []stats.GenerationInfo
	Persistent bool          // History survives restarts
	Uptime     time.Duration // Time since the server started
}

// Renderer handles HTML generation for the dashboard.
type Renderer struct {
	adminPath string
}

// NewRenderer creates a new renderer for the dashboard at adminPath.
func NewRenderer(adminPath string) *Renderer {
	return &Renderer{
		adminPath: adminPath,
	}
}

// RenderDashboard generates the complete dashboard HTML.
func (r *Renderer) RenderDashboard(d Dashboard) string {
	var sb strings.Builder

	r.writeHeader(&sb)
	r.writeSummary(&sb, d)
	r.writeCategories(&sb, d.Categories)
	r.writeRecent(&sb, d.Recent)
	sb.WriteString("</body>\n</html>")

	return sb.String()
}

func (r *Renderer) writeHeader(sb *strings.Builder) {
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString("<meta charset=\"UTF-8\">\n")
	sb.WriteString("<title>genpass - history</title>\n")
	sb.WriteString("<style>\n")
	sb.WriteString("body { font-family: monospace; margin: 20px; background: #f5f5f5; }\n")
	sb.WriteString("h1 { color: #333; }\n")
	sb.WriteString(".stat-box { background: white; padding: 15px; margin: 10px 0; border-radius: 5px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }\n")
	sb.WriteString("table { width: 100%; border-collapse: collapse; margin-top: 10px; }\n")
	sb.WriteString("th, td { padding: 8px; text-align: left; border-bottom: 1px solid #ddd; }\n")
	sb.WriteString("th { background-color: #4CAF50; color: white; }\n")
	sb.WriteString(".bar { background: #4CAF50; height: 10px; }\n")
	sb.WriteString("</style>\n")
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString("<h1>genpass</h1>\n")
	sb.WriteString("<p><a href=\"")
	sb.WriteString(html.EscapeString(r.adminPath))
	sb.WriteString("/data\">JSON</a></p>\n")
}

func (r *Renderer) writeSummary(sb *strings.Builder, d Dashboard) {
	storage := "memory (lost on restart)"
	if d.Persistent {
		storage = "sqlite"
	}
	last := "never"
	if !d.Summary.LastGeneration.IsZero() {
		last = d.Summary.LastGeneration.Format("2006-01-02 15:04:05")
	}

	sb.WriteString("<div class=\"stat-box\">\n")
	sb.WriteString("<h2>Generation History</h2>\n")
	writeField(sb, "Uptime", d.Uptime.Truncate(time.Second).String())
	writeField(sb, "Tracking since", d.Summary.StartTime.Format("2006-01-02 15:04:05"))
	writeField(sb, "Total generations", strconv.Itoa(d.Summary.TotalGenerations))
	writeField(sb, "Total items", strconv.FormatInt(d.Summary.TotalItems, 10))
	writeField(sb, "Last generation", last)
	writeField(sb, "Storage", storage)
	sb.WriteString("</div>\n")
}

func (r *Renderer) writeCategories(sb *strings.Builder, counts []stats.CountEntry) {
	sb.WriteString("<div class=\"stat-box\">\n")
	sb.WriteString("<h2>By Category</h2>\n")
	if len(counts) == 0 {
		sb.WriteString("<p>No generations yet.</p>\n</div>\n")
		return
	}

	top := 0
	for _, c := range counts {
		top = max(top, c.Generations)
	}

	sb.WriteString("<table>\n")
	sb.WriteString("<tr><th>Category</th><th>Generations</th><th>Items</th><th></th></tr>\n")
	for _, c := range counts {
		width := c.Generations * 100 / max(top, 1)
		sb.WriteString("<tr><td>")
		sb.WriteString(html.EscapeString(c.Label))
		sb.WriteString("</td><td>")
		sb.WriteString(strconv.Itoa(c.Generations))
		sb.WriteString("</td><td>")
		sb.WriteString(strconv.FormatInt(c.Items, 10))
		sb.WriteString("</td><td><div class=\"bar\" style=\"width: ")
		sb.WriteString(strconv.Itoa(width))
		sb.WriteString("%\"></div></td></tr>\n")
	}
	sb.WriteString("</table>\n</div>\n")
}

func (r *Renderer) writeRecent(sb *strings.Builder, recent []stats.GenerationInfo) {
	sb.WriteString("<div class=\"stat-box\">\n")
	sb.WriteString("<h2>Recent Generations</h2>\n")
	if len(recent) == 0 {
		sb.WriteString("<p>No recent generations yet.</p>\n</div>\n")
		return
	}

	sb.WriteString("<table>\n")
	sb.WriteString("<tr><th>Finished</th><th>Category</th><th>Count</th><th>Elapsed</th><th>Client</th></tr>\n")
	for _, g := range recent {
		sb.WriteString("<tr><td>")
		sb.WriteString(html.EscapeString(g.FinishedAt.Format("2006-01-02 15:04:05")))
		sb.WriteString("</td><td>")
		sb.WriteString(html.EscapeString(g.Category))
		sb.WriteString("</td><td>")
		sb.WriteString(strconv.FormatUint(uint64(g.Count), 10))
		sb.WriteString("</td><td>")
		sb.WriteString(html.EscapeString(engine.FormatElapsed(g.Elapsed)))
		sb.WriteString("</td><td>")
		sb.WriteString(html.EscapeString(g.Client))
		sb.WriteString("</td></tr>\n")
	}
	sb.WriteString("</table>\n</div>\n")
}

func writeField(sb *strings.Builder, name, value string) {
	sb.WriteString("<p><strong>")
	sb.WriteString(name)
	sb.WriteString(":</strong> ")
	sb.WriteString(html.EscapeString(value))
	sb.WriteString("</p>\n")
}
