package markdown

import (
	"strings"
	"testing"
)

func TestRenderEmpty(t *testing.T) {
	for _, src := range []string{"", "  \n\t"} {
		got, err := Render(src)
		if err != nil {
			t.Fatalf("Render(%q): %v", src, err)
		}
		if got != "" {
			t.Errorf("Render(%q) = %q, want empty", src, got)
		}
	}
}

func TestRenderBasic(t *testing.T) {
	got, err := Render("# Payments\n\nHandles **card** payments.")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(got)
	if !strings.Contains(html, `<h1 id="payments">Payments</h1>`) {
		t.Errorf("expected heading with auto id, got %q", html)
	}
	if !strings.Contains(html, "<strong>card</strong>") {
		t.Errorf("expected bold text, got %q", html)
	}
}

func TestRenderGFMTable(t *testing.T) {
	got, err := Render("| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(got), "<table>") {
		t.Errorf("expected GFM table, got %q", got)
	}
}

func TestRenderOmitsRawHTML(t *testing.T) {
	got, err := Render("hello <script>alert(1)</script>\n\n<div onclick=\"x()\">block</div>\n")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(got), "<script>") || strings.Contains(string(got), "onclick") {
		t.Errorf("raw HTML leaked into output: %q", got)
	}
}

func TestRenderHighlightsCode(t *testing.T) {
	got, err := Render("```go\nfunc main() {}\n```\n")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(got), "<pre") {
		t.Errorf("expected code block, got %q", got)
	}
	if !strings.Contains(string(got), "func") {
		t.Errorf("expected code content, got %q", got)
	}
}
