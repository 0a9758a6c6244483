package importer

import (
	"context"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"portfolio/internal/markdown"
)

// htmlConverter sanitizes HTML, then converts what is left to markdown
type htmlConverter struct {
	sanitizer *markdown.Sanitizer
	converter *md.Converter
}

// NewHTMLConverter creates the HTML converter
func NewHTMLConverter() Converter {
	return &htmlConverter{
		sanitizer: markdown.NewSanitizer(),
		converter: md.NewConverter("", true, nil),
	}
}

func (c *htmlConverter) Convert(ctx context.Context, input []byte) (Document, error) {
	sanitized := c.sanitizer.Sanitize(string(input))

	body, err := c.converter.ConvertString(sanitized)
	if err != nil {
		return Document{}, fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	title, rest := splitHeading(body)
	return Document{Title: title, Description: rest}, nil
}

func (c *htmlConverter) SupportedExtensions() []string {
	return []string{".html", ".htm"}
}

func (c *htmlConverter) Name() string {
	return "html"
}
