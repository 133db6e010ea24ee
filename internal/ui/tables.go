package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rampantspark/genpass/internal/category"
	"github.com/rampantspark/genpass/internal/engine"
	"github.com/rampantspark/genpass/internal/stats"
)

var (
	headerCellStyle = lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).Padding(0, 1)
	numberCellStyle = cellStyle.Align(lipgloss.Right)
	summaryStyle    = lipgloss.NewStyle().Foreground(muted)
)

// newTable builds a table whose columns listed in numeric are right aligned.
func newTable(headers []string, rows [][]string, numeric ...int) *table.Table {
	right := make(map[int]bool, len(numeric))
	for _, col := range numeric {
		right[col] = true
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			if right[col] {
				return numberCellStyle
			}
			return cellStyle
		})
}

// CategoriesTable lists every category with its charset and item length.
func CategoriesTable() string {
	rows := make([][]string, 0, len(category.All()))
	for _, c := range category.All() {
		p, err := category.PolicyFor(c)
		if err != nil {
			continue
		}
		rows = append(rows, []string{
			c.String(),
			fmt.Sprint(p.Source),
			strconv.Itoa(p.Source.Size()),
			p.Length.String(),
		})
	}
	return newTable([]string{"Category", "Characters", "Symbols", "Length"}, rows, 2, 3).Render()
}

// HistoryTable lists recent generations, newest first.
func HistoryTable(recent []stats.GenerationInfo) string {
	rows := make([][]string, 0, len(recent))
	for _, g := range recent {
		rows = append(rows, []string{
			g.FinishedAt.Format("2006-01-02 15:04:05"),
			g.Category,
			strconv.FormatUint(uint64(g.Count), 10),
			engine.FormatElapsed(g.Elapsed),
			g.Client,
		})
	}
	return newTable([]string{"Finished", "Category", "Count", "Elapsed", "Client"}, rows, 2, 3).Render()
}

// CategoryCountsTable lists per-category totals.
func CategoryCountsTable(counts []stats.CountEntry) string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{
			c.Label,
			strconv.Itoa(c.Generations),
			strconv.FormatInt(c.Items, 10),
		})
	}
	return newTable([]string{"Category", "Generations", "Items"}, rows, 1, 2).Render()
}

// SummaryLine renders totals as one line.
func SummaryLine(s stats.Summary) string {
	last := "never"
	if !s.LastGeneration.IsZero() {
		last = s.LastGeneration.Format("2006-01-02 15:04:05")
	}
	return summaryStyle.Render(fmt.Sprintf("%d generations, %d items, last %s", s.TotalGenerations, s.TotalItems, last))
}

// GenerateSummary renders the one-line report printed after a generation.
// savedPath is empty when nothing was written to disk.
func GenerateSummary(res *engine.Result, savedPath string) string {
	line := fmt.Sprintf("%d %s in %s", res.Count, res.Category, res.ElapsedText)
	if savedPath != "" {
		line += " → " + savedPath
	}
	return summaryStyle.Render(line)
}
