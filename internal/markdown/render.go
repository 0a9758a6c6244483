// Package markdown renders stored descriptions to safe HTML.
package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to sanitized HTML.
// Safe for concurrent use.
type Renderer struct {
	md        goldmark.Markdown
	sanitizer *Sanitizer
}

// NewRenderer creates a renderer with GFM and hard line breaks
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		sanitizer: NewSanitizer(),
	}
}

// Render converts src to HTML. Raw HTML inside src is escaped by goldmark
// and the output is passed through the allow-list.
func (r *Renderer) Render(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(r.sanitizer.Sanitize(buf.String())), nil
}

// MustRender is Render for templates: on failure it falls back to the
// escaped source.
func (r *Renderer) MustRender(src string) template.HTML {
	out, err := r.Render(src)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return out
}
