// Package content renders the HTML page of the web host.
package content

import (
	"html"
	"strconv"
	"strings"

	"github.com/rampantspark/genpass/internal/category"
	"github.com/rampantspark/genpass/internal/engine"
)

// PageData holds everything RenderIndex shows.
type PageData struct {
	Selected category.Category // Checked radio button
	Count    uint              // Value of the count input
	MinCount uint              // Lower bound of the count input
	MaxCount uint              // Upper bound of the count input

	// Result is the last generation, nil before the first one.
	Result *engine.Result

	// Message is shown above the output, e.g. a save refusal.
	Message string
}

// NewPageData builds PageData for the last result of reg.
func NewPageData(reg *engine.Registry, count, maxCount uint) PageData {
	data := PageData{
		Selected: category.Password,
		Count:    count,
		MinCount: 1,
		MaxCount: maxCount,
	}
	if reg.HasResult() {
		last := reg.Last()
		data.Selected = last.Category
		data.Result = &last
	}
	return data
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>genpass</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 960px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
h1 { color: #333; }
form, #output { background: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); margin-bottom: 20px; }
fieldset { border: none; padding: 0; margin: 0 0 12px 0; }
label { margin-right: 12px; }
button { padding: 6px 14px; margin-right: 8px; }
#durationInfo { color: #666; font-size: 14px; margin: 8px 0; }
#output { font-family: monospace; word-break: break-all; }
.note { color: #666; font-size: 12px; }
</style>
</head>
<body>
<h1>genpass</h1>
`

// RenderIndex renders the generator page.
func RenderIndex(d PageData) string {
	var sb strings.Builder
	sb.WriteString(pageHead)

	sb.WriteString(`<form action="/generate" method="post">` + "\n")
	sb.WriteString("<fieldset>\n")
	for _, c := range category.All() {
		writeRadio(&sb, c.String(), c == d.Selected)
	}
	sb.WriteString("</fieldset>\n")

	sb.WriteString(`<label>Count <input type="number" id="count" name="count"`)
	writeAttr(&sb, "value", strconv.FormatUint(uint64(d.Count), 10))
	writeAttr(&sb, "min", strconv.FormatUint(uint64(d.MinCount), 10))
	writeAttr(&sb, "max", strconv.FormatUint(uint64(d.MaxCount), 10))
	sb.WriteString("></label>\n")
	sb.WriteString(`<button type="submit" id="generateBtn">Generate</button>`)
	sb.WriteString(`<a href="/download" id="saveBtn">Save</a>` + "\n")
	sb.WriteString("</form>\n")

	if d.Result != nil {
		sb.WriteString(`<div id="durationInfo">`)
		sb.WriteString(html.EscapeString(d.Result.ElapsedText))
		sb.WriteString("</div>\n")
	}

	sb.WriteString(`<div id="output">` + "\n")
	if d.Message != "" {
		writeMessage(&sb, d.Message)
	}
	if d.Result != nil {
		sb.WriteString(EscapePreview(d.Result.Preview))
		if uint(d.Result.PreviewItems) < d.Result.Count {
			sb.WriteString(`<p class="note">Showing the first `)
			sb.WriteString(strconv.Itoa(d.Result.PreviewItems))
			sb.WriteString(" of ")
			sb.WriteString(strconv.FormatUint(uint64(d.Result.Count), 10))
			sb.WriteString(" items. Save to get all of them.</p>\n")
		}
	} else if d.Message == "" {
		sb.WriteString("<p>Ready to generate.</p>\n")
	}
	sb.WriteString("</div>\n")

	sb.WriteString("</body>\n</html>")
	return sb.String()
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteString(" ")
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(html.EscapeString(value))
	sb.WriteString(`"`)
}
