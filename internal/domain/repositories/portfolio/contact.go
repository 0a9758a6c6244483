package portfolio

import (
	"context"

	"portfolio/internal/domain/models/portfolio"
)

// ContactCategoryRepository defines data access operations for contact categories
type ContactCategoryRepository interface {
	Create(ctx context.Context, category *portfolio.ContactCategory) error

	// GetByName finds a category by exact name, returning ErrNotFound if absent
	GetByName(ctx context.Context, name string) (*portfolio.ContactCategory, error)

	// List retrieves all categories, newest first
	List(ctx context.Context) ([]portfolio.ContactCategory, error)

	Update(ctx context.Context, category *portfolio.ContactCategory) error
	Delete(ctx context.Context, id string) error
}

// ContactMessageRepository defines data access operations for contact messages
type ContactMessageRepository interface {
	Create(ctx context.Context, message *portfolio.ContactMessage) error

	// List retrieves all messages, newest first
	List(ctx context.Context) ([]portfolio.ContactMessage, error)

	Delete(ctx context.Context, id string) error
}
