package portfolio

import (
	"context"

	"portfolio/internal/domain/models/portfolio"
)

// SectionRepository defines data access operations for sections
type SectionRepository interface {
	// Create inserts a section and fills in the generated ID and timestamps
	Create(ctx context.Context, section *portfolio.Section) error

	// GetByID retrieves a section by ID
	GetByID(ctx context.Context, id string) (*portfolio.Section, error)

	// List retrieves all sections ordered by order_index, then arrival order
	List(ctx context.Context) ([]portfolio.Section, error)

	// Count returns the number of sections
	Count(ctx context.Context) (int, error)

	// Update writes every mutable field and refreshes updated_at.
	// Returns ErrNotFound when no row matched.
	Update(ctx context.Context, section *portfolio.Section) error

	// Delete removes a section; its sub-items are removed by the store cascade.
	// Returns ErrNotFound when no row matched.
	Delete(ctx context.Context, id string) error
}
