package admin

import (
	models "portfolio/internal/domain/models/portfolio"
)

// Kind tags which entity an editor or save operation targets.
type Kind string

const (
	KindSection Kind = "section"
	KindSubItem Kind = "subitem"
)

// Draft is the editable form state for one section or sub-item.
// ID is empty while creating.
type Draft struct {
	Kind        Kind                   `json:"kind"`
	ID          string                 `json:"id,omitempty"`
	SectionID   string                 `json:"section_id,omitempty"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Icon        string                 `json:"icon,omitempty"`
	Color       string                 `json:"color,omitempty"`
	OrderIndex  *int                   `json:"order_index,omitempty"`
	Type        string                 `json:"type,omitempty"`
	MediaItems  []models.MediaItem     `json:"media_items,omitempty"`
	Content     []models.PortfolioItem `json:"content,omitempty"`
}

// Entity is an explicitly tagged section or sub-item loaded into the editor.
type Entity struct {
	Kind    Kind
	Section *models.Section
	SubItem *models.SubItem
}

// SectionEntity tags a section for editing
func SectionEntity(s *models.Section) Entity {
	return Entity{Kind: KindSection, Section: s}
}

// SubItemEntity tags a sub-item for editing
func SubItemEntity(s *models.SubItem) Entity {
	return Entity{Kind: KindSubItem, SubItem: s}
}

// draftFrom preloads every editable field of e
func draftFrom(e Entity) (Draft, bool) {
	switch e.Kind {
	case KindSection:
		if e.Section == nil {
			return Draft{}, false
		}
		s := e.Section
		order := s.OrderIndex
		return Draft{
			Kind:        KindSection,
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Icon:        s.Icon,
			Color:       s.Color,
			OrderIndex:  &order,
		}, true
	case KindSubItem:
		if e.SubItem == nil {
			return Draft{}, false
		}
		s := e.SubItem
		order := s.OrderIndex
		return Draft{
			Kind:        KindSubItem,
			ID:          s.ID,
			SectionID:   s.SectionID,
			Title:       s.Title,
			Description: s.Description,
			OrderIndex:  &order,
			Type:        s.EffectiveType(),
			MediaItems:  append([]models.MediaItem(nil), s.MediaItems...),
			Content:     append([]models.PortfolioItem(nil), s.Content...),
		}, true
	}
	return Draft{}, false
}

func (d Draft) clone() Draft {
	c := d
	if d.OrderIndex != nil {
		order := *d.OrderIndex
		c.OrderIndex = &order
	}
	c.MediaItems = append([]models.MediaItem(nil), d.MediaItems...)
	c.Content = append([]models.PortfolioItem(nil), d.Content...)
	return c
}
