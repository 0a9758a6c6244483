package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/portfolio"
	"portfolio/internal/domain/repositories"
	portfolioRepo "portfolio/internal/domain/repositories/portfolio"
	portfolioSvc "portfolio/internal/domain/services/portfolio"
)

// contentService implements the ContentService interface
type contentService struct {
	sectionRepo portfolioRepo.SectionRepository
	subItemRepo portfolioRepo.SubItemRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewContentService creates the data access layer for sections and sub-items
func NewContentService(
	sectionRepo portfolioRepo.SectionRepository,
	subItemRepo portfolioRepo.SubItemRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) portfolioSvc.ContentService {
	return &contentService{
		sectionRepo: sectionRepo,
		subItemRepo: subItemRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// ListSections returns all sections sorted by order_index
func (s *contentService) ListSections(ctx context.Context) ([]models.Section, error) {
	return s.sectionRepo.List(ctx)
}

// ListSubItems returns a section's sub-items sorted by order_index
func (s *contentService) ListSubItems(ctx context.Context, sectionID string) ([]models.SubItem, error) {
	if strings.TrimSpace(sectionID) == "" {
		return nil, &domain.ValidationError{Message: "section_id is required"}
	}
	return s.subItemRepo.ListBySection(ctx, sectionID)
}

// GetSubItem retrieves one sub-item
func (s *contentService) GetSubItem(ctx context.Context, id string) (*models.SubItem, error) {
	return s.subItemRepo.GetByID(ctx, id)
}

// CreateSection inserts a section. Without an explicit order it is appended.
func (s *contentService) CreateSection(ctx context.Context, req *portfolioSvc.CreateSectionRequest) (*models.Section, error) {
	if err := validateSectionFields(req.Title, req.Icon, req.Color, req.OrderIndex); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	section := &models.Section{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Icon:        strings.TrimSpace(req.Icon),
		Color:       strings.TrimSpace(req.Color),
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if req.OrderIndex != nil {
			section.OrderIndex = *req.OrderIndex
		} else {
			n, err := s.sectionRepo.Count(txCtx)
			if err != nil {
				return err
			}
			section.OrderIndex = n
		}
		return s.sectionRepo.Create(txCtx, section)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("section created",
		"id", section.ID,
		"title", section.Title,
		"order_index", section.OrderIndex,
	)

	return section, nil
}

// UpdateSection replaces a section's editable fields
func (s *contentService) UpdateSection(ctx context.Context, id string, req *portfolioSvc.UpdateSectionRequest) (*models.Section, error) {
	if err := validateSectionFields(req.Title, req.Icon, req.Color, req.OrderIndex); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	section, err := s.sectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	section.Title = strings.TrimSpace(req.Title)
	section.Description = strings.TrimSpace(req.Description)
	section.Icon = strings.TrimSpace(req.Icon)
	section.Color = strings.TrimSpace(req.Color)
	if req.OrderIndex != nil {
		section.OrderIndex = *req.OrderIndex
	}

	if err := s.sectionRepo.Update(ctx, section); err != nil {
		return nil, err
	}

	s.logger.Info("section updated",
		"id", section.ID,
		"title", section.Title,
	)

	return section, nil
}

// DeleteSection removes a section and, through the store cascade, its sub-items
func (s *contentService) DeleteSection(ctx context.Context, id string) error {
	if err := s.sectionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("section deleted", "id", id)
	return nil
}

// CreateSubItem inserts a sub-item under sectionID. Without an explicit
// order it is appended to the section.
func (s *contentService) CreateSubItem(ctx context.Context, sectionID string, req *portfolioSvc.CreateSubItemRequest) (*models.SubItem, error) {
	if strings.TrimSpace(sectionID) == "" {
		return nil, &domain.ValidationError{Message: "section_id is required"}
	}
	if err := validateSubItemFields(req.Title, req.Type, req.OrderIndex, req.MediaItems); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	item := &models.SubItem{
		SectionID:   sectionID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Type:        defaultType(req.Type),
		MediaItems:  req.MediaItems,
		MediaURLs:   req.MediaURLs,
		MediaTypes:  req.MediaTypes,
		Content:     req.Content,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if req.OrderIndex != nil {
			item.OrderIndex = *req.OrderIndex
		} else {
			n, err := s.subItemRepo.CountBySection(txCtx, sectionID)
			if err != nil {
				return err
			}
			item.OrderIndex = n
		}
		return s.subItemRepo.Create(txCtx, item)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sub-item created",
		"id", item.ID,
		"section_id", item.SectionID,
		"title", item.Title,
		"media_items", len(item.MediaItems),
	)

	return item, nil
}

// UpdateSubItem replaces a sub-item's editable fields. section_id is kept.
func (s *contentService) UpdateSubItem(ctx context.Context, id string, req *portfolioSvc.UpdateSubItemRequest) (*models.SubItem, error) {
	if err := validateSubItemFields(req.Title, req.Type, req.OrderIndex, req.MediaItems); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	item, err := s.subItemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Title = strings.TrimSpace(req.Title)
	item.Description = strings.TrimSpace(req.Description)
	item.Type = defaultType(req.Type)
	item.MediaItems = req.MediaItems
	item.MediaURLs = req.MediaURLs
	item.MediaTypes = req.MediaTypes
	if req.Content != nil {
		item.Content = req.Content
	}
	if req.OrderIndex != nil {
		item.OrderIndex = *req.OrderIndex
	}

	if err := s.subItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("sub-item updated",
		"id", item.ID,
		"section_id", item.SectionID,
		"media_items", len(item.MediaItems),
	)

	return item, nil
}

// DeleteSubItem removes a sub-item
func (s *contentService) DeleteSubItem(ctx context.Context, id string) error {
	if err := s.subItemRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("sub-item deleted", "id", id)
	return nil
}

func defaultType(t string) string {
	if t == "" {
		return models.SubItemTypeGallery
	}
	return t
}
