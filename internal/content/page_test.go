package content

import (
	"strings"
	"testing"

	"github.com/rampantspark/genpass/internal/category"
	"github.com/rampantspark/genpass/internal/engine"
)

func TestEscapePreview(t *testing.T) {
	tests := []struct {
		name    string
		preview string
		want    string
	}{
		{"empty", "", ""},
		{"plain items", "abc<br/>\ndef<br/>\n", "abc<br/>\ndef<br/>\n"},
		{"special characters", "a&b<br/>\n[x]<br/>\n", "a&amp;b<br/>\n[x]<br/>\n"},
		{"markup-like item", "<i><br/>\n", "&lt;i&gt;<br/>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapePreview(tt.preview); got != tt.want {
				t.Errorf("EscapePreview(%q) = %q, want %q", tt.preview, got, tt.want)
			}
		})
	}
}

func TestRenderIndex_Empty(t *testing.T) {
	page := RenderIndex(PageData{
		Selected: category.PIN6,
		Count:    100,
		MinCount: 1,
		MaxCount: 5000,
	})

	for _, want := range []string{
		"<!DOCTYPE html>",
		`value="pin6" checked`,
		`name="count" value="100" min="1" max="5000"`,
		"Ready to generate.",
		`href="/download"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(page, "durationInfo") {
		t.Error("page shows duration before any generation")
	}
	for _, c := range category.All() {
		if !strings.Contains(page, `value="`+c.String()+`"`) {
			t.Errorf("page missing radio button for %s", c)
		}
	}
}

func TestRenderIndex_WithResult(t *testing.T) {
	reg := engine.NewRegistry(engine.New(engine.WithPreviewLimit(3)))
	res, err := reg.Generate(category.PasswordSpecial, 5)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	page := RenderIndex(NewPageData(reg, 5, 100))

	if !strings.Contains(page, `value="passwordspecial" checked`) {
		t.Error("last category is not selected")
	}
	if !strings.Contains(page, `<div id="durationInfo">`+res.ElapsedText+"</div>") {
		t.Error("page missing elapsed time")
	}
	if !strings.Contains(page, EscapePreview(res.Preview)) {
		t.Error("page missing escaped preview")
	}
	if !strings.Contains(page, "Showing the first 3 of 5 items") {
		t.Error("page missing truncation note")
	}
	if strings.Count(page, engine.PreviewBreak) != 3 {
		t.Errorf("page has %d preview breaks, want 3", strings.Count(page, engine.PreviewBreak))
	}
}

func TestRenderIndex_Message(t *testing.T) {
	page := RenderIndex(PageData{Count: 1, MinCount: 1, MaxCount: 1, Message: "No data available to save."})

	if !strings.Contains(page, "<p><strong>No data available to save.</strong></p>") {
		t.Error("page missing message")
	}
	if strings.Contains(page, "Ready to generate.") {
		t.Error("ready notice shown alongside message")
	}
}

func TestNewPageData_Defaults(t *testing.T) {
	reg := engine.NewRegistry(engine.New())
	d := NewPageData(reg, 10, 100)

	if d.Result != nil {
		t.Error("Result set before any generation")
	}
	if d.Selected != category.Password {
		t.Errorf("Selected = %s, want password", d.Selected)
	}
	if d.MinCount != 1 || d.MaxCount != 100 || d.Count != 10 {
		t.Errorf("counts = %d/%d/%d, want 10/1/100", d.Count, d.MinCount, d.MaxCount)
	}
}
