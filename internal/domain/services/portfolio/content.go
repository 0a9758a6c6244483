package portfolio

import (
	"context"

	"portfolio/internal/domain/models/portfolio"
)

// CreateSectionRequest represents a request to create a section.
// A nil OrderIndex places the section after the existing ones.
type CreateSectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	OrderIndex  *int   `json:"order_index"`
}

// UpdateSectionRequest replaces a section's editable fields
type UpdateSectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	OrderIndex  *int   `json:"order_index"`
}

// CreateSubItemRequest represents a request to create a sub-item.
// MediaURLs and MediaTypes are persisted as sent.
type CreateSubItemRequest struct {
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Type        string                    `json:"type"`
	OrderIndex  *int                      `json:"order_index"`
	MediaItems  []portfolio.MediaItem     `json:"media_items"`
	MediaURLs   []string                  `json:"media_urls"`
	MediaTypes  []string                  `json:"media_types"`
	Content     []portfolio.PortfolioItem `json:"content,omitempty"`
}

// UpdateSubItemRequest replaces a sub-item's editable fields.
// The owning section cannot be changed.
type UpdateSubItemRequest struct {
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Type        string                    `json:"type"`
	OrderIndex  *int                      `json:"order_index"`
	MediaItems  []portfolio.MediaItem     `json:"media_items"`
	MediaURLs   []string                  `json:"media_urls"`
	MediaTypes  []string                  `json:"media_types"`
	Content     []portfolio.PortfolioItem `json:"content,omitempty"`
}

// ContentService is the typed data access layer over sections and sub-items.
// Admin and public paths both read through it.
type ContentService interface {
	// ListSections returns all sections sorted by order_index
	ListSections(ctx context.Context) ([]portfolio.Section, error)

	// ListSubItems returns one section's sub-items sorted by order_index
	ListSubItems(ctx context.Context, sectionID string) ([]portfolio.SubItem, error)

	// GetSubItem retrieves a single sub-item
	GetSubItem(ctx context.Context, id string) (*portfolio.SubItem, error)

	CreateSection(ctx context.Context, req *CreateSectionRequest) (*portfolio.Section, error)
	UpdateSection(ctx context.Context, id string, req *UpdateSectionRequest) (*portfolio.Section, error)
	DeleteSection(ctx context.Context, id string) error

	CreateSubItem(ctx context.Context, sectionID string, req *CreateSubItemRequest) (*portfolio.SubItem, error)
	UpdateSubItem(ctx context.Context, id string, req *UpdateSubItemRequest) (*portfolio.SubItem, error)
	DeleteSubItem(ctx context.Context, id string) error
}
