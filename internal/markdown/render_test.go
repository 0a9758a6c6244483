package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name        string
		src         string
		contains    []string
		notContains []string
	}{
		{name: "paragraph and emphasis", src: "Hello **world**", contains: []string{"<p>", "<strong>world</strong>"}},
		{name: "heading gets id", src: "# Housing Justice", contains: []string{`<h1 id="housing-justice">`}},
		{name: "hard wraps", src: "line one\nline two", contains: []string{"<br"}},
		{name: "strikethrough", src: "~~old~~", contains: []string{"<del>old</del>"}},
		{name: "table", src: "| a | b |\n|---|---|\n| 1 | 2 |", contains: []string{"<table>", "<td>1</td>"}},
		{name: "external link opens in new tab", src: "[site](https://example.com)", contains: []string{`href="https://example.com"`, `target="_blank"`, "nofollow"}},
		{name: "raw script dropped", src: "hi <script>alert(1)</script>", notContains: []string{"<script", "alert(1)</script>"}},
		{name: "javascript link dropped", src: "[x](javascript:alert(1))", notContains: []string{"javascript:"}},
		{name: "inline handler dropped", src: `<p onclick="steal()">x</p>`, notContains: []string{"onclick"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.src)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			html := string(out)
			for _, want := range tt.contains {
				if !strings.Contains(html, want) {
					t.Errorf("output %q missing %q", html, want)
				}
			}
			for _, bad := range tt.notContains {
				if strings.Contains(html, bad) {
					t.Errorf("output %q contains %q", html, bad)
				}
			}
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	out, err := NewRenderer().Render("   \n")
	if err != nil || out != "" {
		t.Errorf("Render(blank) = %q, %v", out, err)
	}
}

func TestSanitizer(t *testing.T) {
	s := NewSanitizer()
	got := s.Sanitize(`<p onclick="x">hi</p><img src="x" onerror="y">`)
	if got != "<p>hi</p>" {
		t.Errorf("Sanitize = %q", got)
	}
}
