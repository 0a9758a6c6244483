// Package display builds the read-only view models for the public site.
package display

import (
	"context"
	"html/template"
	"net/url"
	"sort"
	"strings"

	models "portfolio/internal/domain/models/portfolio"
	portfolioSvc "portfolio/internal/domain/services/portfolio"
)

// OpenParam is the query parameter holding the expanded section ids.
const OpenParam = "open"

// Markdown renders a stored description
type Markdown interface {
	MustRender(src string) template.HTML
}

// Tree is the public page: every section with its sub-items
type Tree struct {
	Sections []SectionNode
}

// SectionNode is one collapsible section header
type SectionNode struct {
	models.Section
	Body  template.HTML
	Items []models.SubItem
	Open  bool
	// ToggleHref links to the page with this section flipped
	ToggleHref template.URL
}

// Load reads sections and then, one section at a time, their sub-items
func Load(ctx context.Context, content portfolioSvc.ContentService) ([]models.Section, map[string][]models.SubItem, error) {
	sections, err := content.ListSections(ctx)
	if err != nil {
		return nil, nil, err
	}
	subItems := make(map[string][]models.SubItem, len(sections))
	for _, s := range sections {
		items, err := content.ListSubItems(ctx, s.ID)
		if err != nil {
			return nil, nil, err
		}
		subItems[s.ID] = items
	}
	return sections, subItems, nil
}

// BuildTree assembles the page. open holds the expanded section ids; ids
// that no longer exist are ignored.
func BuildTree(sections []models.Section, subItems map[string][]models.SubItem, open map[string]bool, md Markdown) Tree {
	tree := Tree{Sections: make([]SectionNode, 0, len(sections))}
	for _, s := range sections {
		tree.Sections = append(tree.Sections, SectionNode{
			Section:    s,
			Body:       md.MustRender(s.Description),
			Items:      subItems[s.ID],
			Open:       open[s.ID],
			ToggleHref: toggleHref(open, s.ID),
		})
	}
	return tree
}

// ParseOpen reads the expanded ids from a comma separated list
func ParseOpen(raw string) map[string]bool {
	open := make(map[string]bool)
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			open[id] = true
		}
	}
	return open
}

// Toggle returns a copy of open with id flipped. Other sections keep their
// state.
func Toggle(open map[string]bool, id string) map[string]bool {
	next := make(map[string]bool, len(open)+1)
	for k, v := range open {
		if v {
			next[k] = true
		}
	}
	if next[id] {
		delete(next, id)
	} else {
		next[id] = true
	}
	return next
}

// EncodeOpen is the inverse of ParseOpen; ids are sorted for stable links
func EncodeOpen(open map[string]bool) string {
	ids := make([]string, 0, len(open))
	for id, v := range open {
		if v {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// ToggleQuery returns the query string with id flipped
func ToggleQuery(open map[string]bool, id string) string {
	encoded := EncodeOpen(Toggle(open, id))
	if encoded == "" {
		return ""
	}
	return url.Values{OpenParam: {encoded}}.Encode()
}

func toggleHref(open map[string]bool, id string) template.URL {
	q := ToggleQuery(open, id)
	if q == "" {
		return "/"
	}
	return template.URL("/?" + q)
}
