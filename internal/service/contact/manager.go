package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/portfolio"
	portfolioRepo "portfolio/internal/domain/repositories/portfolio"
	portfolioSvc "portfolio/internal/domain/services/portfolio"
)

// manager implements the ContactService interface
type manager struct {
	categoryRepo portfolioRepo.ContactCategoryRepository
	messageRepo  portfolioRepo.ContactMessageRepository
	logger       *slog.Logger
}

// NewService creates the contact category/message service
func NewService(
	categoryRepo portfolioRepo.ContactCategoryRepository,
	messageRepo portfolioRepo.ContactMessageRepository,
	logger *slog.Logger,
) portfolioSvc.ContactService {
	return &manager{
		categoryRepo: categoryRepo,
		messageRepo:  messageRepo,
		logger:       logger,
	}
}

func (m *manager) ListCategories(ctx context.Context) ([]models.ContactCategory, error) {
	return m.categoryRepo.List(ctx)
}

func (m *manager) CreateCategory(ctx context.Context, req *portfolioSvc.CategoryRequest) (*models.ContactCategory, error) {
	if err := validateCategoryRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	category := &models.ContactCategory{
		Name:              strings.TrimSpace(req.Name),
		NotificationEmail: strings.TrimSpace(req.NotificationEmail),
	}
	if err := m.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	m.logger.Info("contact category created", "id", category.ID, "name", category.Name)
	return category, nil
}

func (m *manager) UpdateCategory(ctx context.Context, id string, req *portfolioSvc.CategoryRequest) (*models.ContactCategory, error) {
	if err := validateCategoryRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	category := &models.ContactCategory{
		ID:                id,
		Name:              strings.TrimSpace(req.Name),
		NotificationEmail: strings.TrimSpace(req.NotificationEmail),
	}
	if err := m.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	m.logger.Info("contact category updated", "id", id, "name", category.Name)
	return category, nil
}

func (m *manager) DeleteCategory(ctx context.Context, id string) error {
	if err := m.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	m.logger.Info("contact category deleted", "id", id)
	return nil
}

func (m *manager) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return m.messageRepo.List(ctx)
}

func (m *manager) DeleteMessage(ctx context.Context, id string) error {
	if err := m.messageRepo.Delete(ctx, id); err != nil {
		return err
	}
	m.logger.Info("contact message deleted", "id", id)
	return nil
}

func validateCategoryRequest(req *portfolioSvc.CategoryRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.By(func(v interface{}) error {
				if strings.TrimSpace(v.(string)) == "" {
					return validation.ErrRequired
				}
				return nil
			}),
		),
		validation.Field(&req.NotificationEmail, is.Email),
	)
}
