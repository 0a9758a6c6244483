// Package importer turns markdown, HTML and text files into sub-item drafts.
package importer

import (
	"context"

	models "portfolio/internal/domain/models/portfolio"
	"portfolio/internal/service/admin"
)

// Document is the sub-item content extracted from one file
type Document struct {
	Title       string
	Description string // markdown
	Type        string
	MediaItems  []models.MediaItem
}

// Apply copies the document into a sub-item draft. Empty fields leave the
// draft's value alone.
func (d Document) Apply(draft *admin.Draft) {
	if d.Title != "" {
		draft.Title = d.Title
	}
	if d.Description != "" {
		draft.Description = d.Description
	}
	if d.Type != "" {
		draft.Type = d.Type
	}
	if len(d.MediaItems) > 0 {
		draft.MediaItems = append(draft.MediaItems, d.MediaItems...)
	}
}

// Converter extracts a Document from one file format.
// Implementations are stateless and safe for concurrent use.
type Converter interface {
	Convert(ctx context.Context, input []byte) (Document, error)

	// SupportedExtensions returns the extensions handled, with the leading dot
	SupportedExtensions() []string

	// Name is used in logs
	Name() string
}
