package importer

import (
	"context"
	"strings"
)

// textConverter uses plain text as the description unchanged
type textConverter struct{}

// NewTextConverter creates the plain text converter
func NewTextConverter() Converter {
	return &textConverter{}
}

func (c *textConverter) Convert(ctx context.Context, input []byte) (Document, error) {
	return Document{Description: strings.TrimSpace(string(input))}, nil
}

func (c *textConverter) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

func (c *textConverter) Name() string {
	return "plaintext"
}
