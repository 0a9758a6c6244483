package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"portfolio/internal/display"
	models "portfolio/internal/domain/models/portfolio"
	portfolioSvc "portfolio/internal/domain/services/portfolio"
	"portfolio/internal/httputil"
	"portfolio/internal/web"
)

// PublicHandler serves the read-only site and its JSON API
type PublicHandler struct {
	content  portfolioSvc.ContentService
	contact  portfolioSvc.ContactService
	pages    PageRenderer
	markdown display.Markdown
	logger   *slog.Logger
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(
	content portfolioSvc.ContentService,
	contact portfolioSvc.ContactService,
	pages PageRenderer,
	markdown display.Markdown,
	logger *slog.Logger,
) *PublicHandler {
	return &PublicHandler{
		content:  content,
		contact:  contact,
		pages:    pages,
		markdown: markdown,
		logger:   logger,
	}
}

// Index renders the section tree
// GET /{$}
func (h *PublicHandler) Index(w http.ResponseWriter, r *http.Request) {
	sections, subItems, err := display.Load(r.Context(), h.content)
	if err != nil {
		h.logger.Error("load sections", "error", err)
		handleError(w, err)
		return
	}

	categories, err := h.contact.ListCategories(r.Context())
	if err != nil {
		// the form still works with the default subject
		h.logger.Warn("load contact categories", "error", err)
		categories = nil
	}

	open := display.ParseOpen(r.URL.Query().Get(display.OpenParam))
	h.render(w, web.PageIndex, web.IndexPage{
		Base:       baseFor(r),
		Tree:       display.BuildTree(sections, subItems, open, h.markdown),
		Categories: categories,
	})
}

// Detail renders one sub-item with its gallery or videos
// GET /items/{id}
func (h *PublicHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.content.GetSubItem(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	view := -1
	if v, err := strconv.Atoi(r.URL.Query().Get("view")); err == nil {
		view = v
	}

	h.render(w, web.PageDetail, web.DetailPage{
		Base:   baseFor(r),
		Detail: display.BuildDetail(*item, view, h.markdown),
	})
}

// ListSections returns every section with its sub-items
// GET /api/sections
func (h *PublicHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, subItems, err := display.Load(r.Context(), h.content)
	if err != nil {
		handleError(w, err)
		return
	}

	out := make([]models.SectionWithItems, 0, len(sections))
	for _, s := range sections {
		items := subItems[s.ID]
		if items == nil {
			items = []models.SubItem{}
		}
		out = append(out, models.SectionWithItems{Section: s, SubItems: items})
	}
	httputil.RespondJSON(w, http.StatusOK, out)
}

// ListSubItems returns one section's sub-items
// GET /api/sections/{id}/sub-items
func (h *PublicHandler) ListSubItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.content.ListSubItems(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, items)
}

// Health reports liveness
// GET /health
func (h *PublicHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *PublicHandler) render(w http.ResponseWriter, page string, data interface{}) {
	renderPage(w, h.pages, h.logger, http.StatusOK, page, data)
}
