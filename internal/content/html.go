package content

import (
	"html"
	"strings"

	"github.com/rampantspark/genpass/internal/engine"
)

// EscapePreview HTML-escapes each preview item and re-joins the items with
// engine.PreviewBreak. Items of the passwordspecial category may contain
// '&', so the raw preview cannot be written into a page as is.
func EscapePreview(preview string) string {
	if preview == "" {
		return ""
	}
	items := strings.Split(strings.TrimSuffix(preview, engine.PreviewBreak), engine.PreviewBreak)

	var sb strings.Builder
	sb.Grow(len(preview) + len(preview)/8)
	for _, item := range items {
		sb.WriteString(html.EscapeString(item))
		sb.WriteString(engine.PreviewBreak)
	}
	return sb.String()
}

// writeRadio writes a labelled category radio button.
func writeRadio(sb *strings.Builder, name string, checked bool) {
	escaped := html.EscapeString(name)
	sb.WriteString(`<label><input type="radio" name="category" value="`)
	sb.WriteString(escaped)
	sb.WriteString(`"`)
	if checked {
		sb.WriteString(" checked")
	}
	sb.WriteString("> ")
	sb.WriteString(escaped)
	sb.WriteString("</label>\n")
}

// writeMessage writes a bold notice paragraph.
func writeMessage(sb *strings.Builder, msg string) {
	sb.WriteString("<p><strong>")
	sb.WriteString(html.EscapeString(msg))
	sb.WriteString("</strong></p>\n")
}
