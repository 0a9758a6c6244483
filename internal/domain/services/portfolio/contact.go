package portfolio

import (
	"context"

	"portfolio/internal/domain/models/portfolio"
)

// ContactRequest is the public contact form payload
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CategoryRequest creates or replaces a contact category
type CategoryRequest struct {
	Name              string `json:"name"`
	NotificationEmail string `json:"notification_email"`
}

// ContactRelay stores a contact submission and forwards it by email
type ContactRelay interface {
	// Send validates, stores and emails the submission. Returns the provider message id.
	Send(ctx context.Context, req *ContactRequest) (string, error)
}

// ContactService manages contact categories and stored messages
type ContactService interface {
	ListCategories(ctx context.Context) ([]portfolio.ContactCategory, error)
	CreateCategory(ctx context.Context, req *CategoryRequest) (*portfolio.ContactCategory, error)
	UpdateCategory(ctx context.Context, id string, req *CategoryRequest) (*portfolio.ContactCategory, error)
	DeleteCategory(ctx context.Context, id string) error

	ListMessages(ctx context.Context) ([]portfolio.ContactMessage, error)
	DeleteMessage(ctx context.Context, id string) error
}
