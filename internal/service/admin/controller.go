// Package admin holds the per-session state behind the admin panel: a mirror
// of the content store, the editor dialog and the error banner.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/portfolio"
	"portfolio/internal/domain/services"
	portfolioSvc "portfolio/internal/domain/services/portfolio"
	"portfolio/internal/service/media"
)

// LoginPath is where an unauthenticated admin is sent.
const LoginPath = "/login"

// State is an immutable snapshot of a controller
type State struct {
	Sections []models.Section            `json:"sections"`
	SubItems map[string][]models.SubItem `json:"sub_items"`
	Error    string                      `json:"error,omitempty"`
	Redirect string                      `json:"redirect,omitempty"`
	Editor   EditorState                 `json:"editor"`
}

// Controller mirrors sections and sub-items (keyed by section id) for one
// admin session. Saves write then reload everything; deletes prune locally.
// Failures set a single error message and leave the mirror untouched.
type Controller struct {
	mu       sync.Mutex
	content  portfolioSvc.ContentService
	sessions services.SessionChecker
	logger   *slog.Logger

	sections []models.Section
	subItems map[string][]models.SubItem
	errMsg   string
	redirect string
	loaded   bool

	editor *Editor
}

// NewController creates an empty controller. Call Refresh to load it.
func NewController(content portfolioSvc.ContentService, sessions services.SessionChecker, logger *slog.Logger) *Controller {
	c := &Controller{
		content:  content,
		sessions: sessions,
		logger:   logger,
		sections: []models.Section{},
		subItems: map[string][]models.SubItem{},
	}
	c.editor = NewEditor(c)
	return c
}

// Editor returns the controller's editor dialog
func (c *Controller) Editor() *Editor {
	return c.editor
}

// Refresh reloads every section and, one section at a time, its sub-items.
// Without a session it records the login redirect and returns
// domain.ErrSessionRequired without touching the mirror.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refresh(ctx)
}

func (c *Controller) refresh(ctx context.Context) error {
	session, err := c.sessions.CurrentSession(ctx)
	if err != nil {
		return c.fail("refresh", err)
	}
	if session == nil {
		c.redirect = LoginPath
		return domain.ErrSessionRequired
	}
	c.redirect = ""

	sections, err := c.content.ListSections(ctx)
	if err != nil {
		return c.fail("refresh", err)
	}

	subItems := make(map[string][]models.SubItem, len(sections))
	for _, section := range sections {
		items, err := c.content.ListSubItems(ctx, section.ID)
		if err != nil {
			return c.fail("refresh", err)
		}
		subItems[section.ID] = items
	}

	c.sections = sections
	c.subItems = subItems
	c.loaded = true
	return nil
}

// EnsureLoaded refreshes a controller that has never loaded successfully
func (c *Controller) EnsureLoaded(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}
	return c.refresh(ctx)
}

// Save creates or updates the entity described by draft, then refreshes.
func (c *Controller) Save(ctx context.Context, draft Draft) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.write(ctx, draft); err != nil {
		return c.fail("save", err)
	}

	c.logger.Info("admin save",
		"kind", draft.Kind,
		"id", draft.ID,
		"section_id", draft.SectionID,
		"created", draft.ID == "",
	)

	return c.refresh(ctx)
}

func (c *Controller) write(ctx context.Context, draft Draft) error {
	switch draft.Kind {
	case KindSection:
		order := len(c.sections)
		if draft.OrderIndex != nil {
			order = *draft.OrderIndex
		}
		if draft.ID != "" {
			_, err := c.content.UpdateSection(ctx, draft.ID, &portfolioSvc.UpdateSectionRequest{
				Title:       draft.Title,
				Description: draft.Description,
				Icon:        draft.Icon,
				Color:       draft.Color,
				OrderIndex:  &order,
			})
			return err
		}
		_, err := c.content.CreateSection(ctx, &portfolioSvc.CreateSectionRequest{
			Title:       draft.Title,
			Description: draft.Description,
			Icon:        draft.Icon,
			Color:       draft.Color,
			OrderIndex:  &order,
		})
		return err

	case KindSubItem:
		if draft.SectionID == "" {
			return &domain.ValidationError{Message: "section_id is required"}
		}
		order := len(c.subItems[draft.SectionID])
		if draft.OrderIndex != nil {
			order = *draft.OrderIndex
		}
		items := normalizeMedia(draft.MediaItems)
		urls, types := models.DeriveMedia(items)

		if draft.ID != "" {
			_, err := c.content.UpdateSubItem(ctx, draft.ID, &portfolioSvc.UpdateSubItemRequest{
				Title:       draft.Title,
				Description: draft.Description,
				Type:        draft.Type,
				OrderIndex:  &order,
				MediaItems:  items,
				MediaURLs:   urls,
				MediaTypes:  types,
				Content:     draft.Content,
			})
			return err
		}
		_, err := c.content.CreateSubItem(ctx, draft.SectionID, &portfolioSvc.CreateSubItemRequest{
			Title:       draft.Title,
			Description: draft.Description,
			Type:        draft.Type,
			OrderIndex:  &order,
			MediaItems:  items,
			MediaURLs:   urls,
			MediaTypes:  types,
			Content:     draft.Content,
		})
		return err
	}

	return &domain.ValidationError{Message: "unknown entity kind"}
}

// Remove deletes a section or sub-item and prunes it from the mirror without
// reloading. sectionID may be empty or stale for sub-items; the mirror is
// searched when its bucket lacks the item.
func (c *Controller) Remove(ctx context.Context, kind Kind, id, sectionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch kind {
	case KindSection:
		if err := c.content.DeleteSection(ctx, id); err != nil {
			return c.fail("remove", err)
		}
		c.sections = removeSection(c.sections, id)
		delete(c.subItems, id)

	case KindSubItem:
		if err := c.content.DeleteSubItem(ctx, id); err != nil {
			return c.fail("remove", err)
		}
		if !hasSubItem(c.subItems[sectionID], id) {
			sectionID = c.sectionOf(id)
		}
		if items, ok := c.subItems[sectionID]; ok {
			c.subItems[sectionID] = removeSubItem(items, id)
		}

	default:
		return c.fail("remove", &domain.ValidationError{Message: "unknown entity kind"})
	}

	c.logger.Info("admin remove", "kind", kind, "id", id)
	return nil
}

// Section returns the mirrored section with id
func (c *Controller) Section(id string) (models.Section, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.findSection(id)
}

// SubItem returns the mirrored sub-item with id
func (c *Controller) SubItem(id string) (models.SubItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.findSubItem(id)
}

// LookupSection returns section id for editing. A mirror miss reloads once;
// a miss after the reload is recorded in the banner.
func (c *Controller) LookupSection(ctx context.Context, id string) (models.Section, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.findSection(id); ok {
		return s, nil
	}
	if err := c.refresh(ctx); err != nil {
		return models.Section{}, err
	}
	if s, ok := c.findSection(id); ok {
		return s, nil
	}
	return models.Section{}, c.fail("lookup", &domain.NotFoundError{Message: "section not found"})
}

// LookupSubItem is LookupSection for sub-items
func (c *Controller) LookupSubItem(ctx context.Context, id string) (models.SubItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.findSubItem(id); ok {
		return item, nil
	}
	if err := c.refresh(ctx); err != nil {
		return models.SubItem{}, err
	}
	if item, ok := c.findSubItem(id); ok {
		return item, nil
	}
	return models.SubItem{}, c.fail("lookup", &domain.NotFoundError{Message: "sub-item not found"})
}

// DismissError clears the error banner
func (c *Controller) DismissError() {
	c.mu.Lock()
	c.errMsg = ""
	c.mu.Unlock()
}

// Snapshot returns a copy of the controller state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Sections: append([]models.Section{}, c.sections...),
		SubItems: make(map[string][]models.SubItem, len(c.subItems)),
		Error:    c.errMsg,
		Redirect: c.redirect,
		Editor:   c.editor.State(),
	}
	for id, items := range c.subItems {
		cp := make([]models.SubItem, len(items))
		for i, item := range items {
			cp[i] = cloneSubItem(item)
		}
		st.SubItems[id] = cp
	}
	return st
}

// fail records err as the banner message and returns it.
func (c *Controller) fail(op string, err error) error {
	if errors.Is(err, domain.ErrSessionRequired) {
		return err
	}
	c.errMsg = err.Error()
	c.logger.Warn("admin operation failed", "op", op, "error", err)
	return err
}

func (c *Controller) findSection(id string) (models.Section, bool) {
	for _, s := range c.sections {
		if s.ID == id {
			return s, true
		}
	}
	return models.Section{}, false
}

func (c *Controller) findSubItem(id string) (models.SubItem, bool) {
	for _, items := range c.subItems {
		for _, item := range items {
			if item.ID == id {
				return cloneSubItem(item), true
			}
		}
	}
	return models.SubItem{}, false
}

func hasSubItem(items []models.SubItem, id string) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (c *Controller) sectionOf(subItemID string) string {
	for sectionID, items := range c.subItems {
		for _, item := range items {
			if item.ID == subItemID {
				return sectionID
			}
		}
	}
	return ""
}

// normalizeMedia copies items, storing youtube links as their video id
func normalizeMedia(items []models.MediaItem) []models.MediaItem {
	out := make([]models.MediaItem, len(items))
	for i, item := range items {
		if item.Type == models.MediaTypeYouTube {
			if id, err := media.ExtractVideoID(item.URL); err == nil {
				item.URL = id
			}
		}
		out[i] = item
	}
	return out
}

func removeSection(sections []models.Section, id string) []models.Section {
	out := make([]models.Section, 0, len(sections))
	for _, s := range sections {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

func removeSubItem(items []models.SubItem, id string) []models.SubItem {
	out := make([]models.SubItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func cloneSubItem(item models.SubItem) models.SubItem {
	item.MediaItems = append([]models.MediaItem{}, item.MediaItems...)
	item.MediaURLs = append([]string{}, item.MediaURLs...)
	item.MediaTypes = append([]string{}, item.MediaTypes...)
	item.Content = append([]models.PortfolioItem(nil), item.Content...)
	return item
}
