package portfolio

import (
	"context"

	"portfolio/internal/domain/models/portfolio"
)

// SubItemRepository defines data access operations for sub-items
type SubItemRepository interface {
	// Create inserts a sub-item and fills in the generated ID and timestamps
	Create(ctx context.Context, item *portfolio.SubItem) error

	// GetByID retrieves a sub-item by ID
	GetByID(ctx context.Context, id string) (*portfolio.SubItem, error)

	// ListBySection retrieves a section's sub-items ordered by order_index
	ListBySection(ctx context.Context, sectionID string) ([]portfolio.SubItem, error)

	// CountBySection returns the number of sub-items in a section
	CountBySection(ctx context.Context, sectionID string) (int, error)

	// ListStoragePaths returns every storagePath referenced by any media item
	ListStoragePaths(ctx context.Context) ([]string, error)

	// Update writes every mutable field (section_id is never changed).
	// Returns ErrNotFound when no row matched.
	Update(ctx context.Context, item *portfolio.SubItem) error

	// Delete removes a sub-item. Returns ErrNotFound when no row matched.
	Delete(ctx context.Context, id string) error
}
