// Package seed loads the default portfolio content into an empty store.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/portfolio"
	"portfolio/internal/domain/repositories"
	portfolioRepo "portfolio/internal/domain/repositories/portfolio"
)

//go:embed portfolio.yaml
var defaultData []byte

// Data is the seed document
type Data struct {
	Sections   []SectionData  `yaml:"sections"`
	Categories []CategoryData `yaml:"contact_categories"`
}

// SectionData is one seeded section with its sub-items
type SectionData struct {
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Icon        string        `yaml:"icon"`
	Color       string        `yaml:"color"`
	SubItems    []SubItemData `yaml:"sub_items"`
}

// SubItemData is one seeded sub-item
type SubItemData struct {
	Title       string                 `yaml:"title"`
	Description string                 `yaml:"description"`
	Type        string                 `yaml:"type"`
	MediaItems  []models.MediaItem     `yaml:"media_items"`
	Content     []models.PortfolioItem `yaml:"content"`
}

// CategoryData is one seeded contact category
type CategoryData struct {
	Name              string `yaml:"name"`
	NotificationEmail string `yaml:"notification_email"`
}

// Default parses the embedded seed document
func Default() (*Data, error) {
	return Parse(defaultData)
}

// Parse reads a seed document
func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	for i, s := range data.Sections {
		if s.Title == "" {
			return nil, fmt.Errorf("section %d: title is required", i)
		}
		for j, item := range s.SubItems {
			if item.Title == "" {
				return nil, fmt.Errorf("section %q sub-item %d: title is required", s.Title, j)
			}
		}
	}
	return &data, nil
}

// Result counts what a seed run created
type Result struct {
	Sections   int
	SubItems   int
	Categories int
}

// Seeder writes seed data through the repositories
type Seeder struct {
	sections   portfolioRepo.SectionRepository
	subItems   portfolioRepo.SubItemRepository
	categories portfolioRepo.ContactCategoryRepository
	siteConfig portfolioRepo.SiteConfigRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewSeeder creates a seeder
func NewSeeder(
	sections portfolioRepo.SectionRepository,
	subItems portfolioRepo.SubItemRepository,
	categories portfolioRepo.ContactCategoryRepository,
	siteConfig portfolioRepo.SiteConfigRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		sections:   sections,
		subItems:   subItems,
		categories: categories,
		siteConfig: siteConfig,
		txManager:  txManager,
		logger:     logger,
	}
}

// Seed inserts data in one transaction. Sections are skipped when the store
// already has any; categories are skipped by name.
func (s *Seeder) Seed(ctx context.Context, data *Data) (Result, error) {
	var res Result
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		existing, err := s.sections.Count(txCtx)
		if err != nil {
			return err
		}
		if existing > 0 {
			s.logger.Info("sections already present, skipping content", "count", existing)
		} else {
			for i, sd := range data.Sections {
				if err := s.seedSection(txCtx, i, sd, &res); err != nil {
					return err
				}
			}
		}

		for _, cd := range data.Categories {
			_, err := s.categories.GetByName(txCtx, cd.Name)
			if err == nil {
				continue
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("category %q: %w", cd.Name, err)
			}
			category := &models.ContactCategory{Name: cd.Name, NotificationEmail: cd.NotificationEmail}
			if err := s.categories.Create(txCtx, category); err != nil {
				return fmt.Errorf("category %q: %w", cd.Name, err)
			}
			res.Categories++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("seed complete",
		"sections", res.Sections,
		"sub_items", res.SubItems,
		"categories", res.Categories,
	)
	return res, nil
}

func (s *Seeder) seedSection(ctx context.Context, order int, sd SectionData, res *Result) error {
	section := &models.Section{
		Title:       sd.Title,
		Description: sd.Description,
		Icon:        sd.Icon,
		Color:       sd.Color,
		OrderIndex:  order,
	}
	if err := s.sections.Create(ctx, section); err != nil {
		return fmt.Errorf("section %q: %w", sd.Title, err)
	}
	res.Sections++

	for j, item := range sd.SubItems {
		subItem := &models.SubItem{
			SectionID:   section.ID,
			Title:       item.Title,
			Description: item.Description,
			OrderIndex:  j,
			Type:        item.Type,
			MediaItems:  item.MediaItems,
			Content:     item.Content,
		}
		if subItem.Type == "" {
			subItem.Type = models.SubItemTypeGallery
		}
		if subItem.MediaItems == nil {
			subItem.MediaItems = []models.MediaItem{}
		}
		subItem.SyncMedia()
		if err := s.subItems.Create(ctx, subItem); err != nil {
			return fmt.Errorf("sub-item %q: %w", item.Title, err)
		}
		res.SubItems++
	}
	return nil
}

// StoreAPIKey writes the email API key into the config table
func (s *Seeder) StoreAPIKey(ctx context.Context, key, value string) error {
	if value == "" {
		return nil
	}
	return s.siteConfig.Set(ctx, key, value)
}
