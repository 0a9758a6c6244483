package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/portfolio"
	"portfolio/internal/httputil"
	"portfolio/internal/service/admin"
	"portfolio/internal/web"
)

// AdminHandler exposes the per-session admin controller and editor.
// Every mutation goes through the editor, so validation and the
// write-then-reload cycle are shared with the CLI.
type AdminHandler struct {
	registry *admin.Registry
	pages    PageRenderer
	logger   *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(registry *admin.Registry, pages PageRenderer, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		registry: registry,
		pages:    pages,
		logger:   logger,
	}
}

type sectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	OrderIndex  *int   `json:"order_index"`
}

type sectionPatch struct {
	Title       httputil.OptionalString `json:"title"`
	Description httputil.OptionalString `json:"description"`
	Icon        httputil.OptionalString `json:"icon"`
	Color       httputil.OptionalString `json:"color"`
	OrderIndex  *int                    `json:"order_index"`
}

type subItemRequest struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Type        string                 `json:"type"`
	OrderIndex  *int                   `json:"order_index"`
	MediaItems  []models.MediaItem     `json:"media_items"`
	Content     []models.PortfolioItem `json:"content"`
}

type subItemPatch struct {
	Title       httputil.OptionalString `json:"title"`
	Description httputil.OptionalString `json:"description"`
	Type        httputil.OptionalString `json:"type"`
	OrderIndex  *int                    `json:"order_index"`
	MediaItems  *[]models.MediaItem     `json:"media_items"`
	Content     *[]models.PortfolioItem `json:"content"`
}

// controller returns the caller's controller, loading it on first use.
// Routes are behind RequireAuth so the session is present.
func (h *AdminHandler) controller(ctx context.Context) (*admin.Controller, error) {
	c := h.registry.Get(httputil.SessionFromContext(ctx))
	if err := c.EnsureLoaded(ctx); err != nil {
		return c, err
	}
	return c, nil
}

// Dashboard renders the admin page
// GET /admin
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := httputil.SessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, admin.LoginPath, http.StatusFound)
		return
	}

	c := h.registry.Get(session)
	if err := c.Refresh(r.Context()); errors.Is(err, domain.ErrSessionRequired) {
		http.Redirect(w, r, admin.LoginPath, http.StatusFound)
		return
	}
	// other refresh failures are shown in the banner

	renderPage(w, h.pages, h.logger, http.StatusOK, web.PageAdmin, web.AdminPage{
		Base:  baseFor(r),
		State: c.Snapshot(),
	})
}

// State reloads and returns the controller state
// GET /api/admin/state
func (h *AdminHandler) State(w http.ResponseWriter, r *http.Request) {
	c := h.registry.Get(httputil.SessionFromContext(r.Context()))
	if err := c.Refresh(r.Context()); errors.Is(err, domain.ErrSessionRequired) {
		h.respondLoginRequired(w)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, c.Snapshot())
}

// DismissError clears the banner
// POST /api/admin/state/dismiss-error
func (h *AdminHandler) DismissError(w http.ResponseWriter, r *http.Request) {
	c := h.registry.Get(httputil.SessionFromContext(r.Context()))
	c.DismissError()
	httputil.RespondJSON(w, http.StatusOK, c.Snapshot())
}

// CreateSection adds a section
// POST /api/admin/sections
func (h *AdminHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.submit(w, r, func(ed *admin.Editor) error {
		ed.OpenCreate(admin.KindSection, "")
		return ed.Update(func(d *admin.Draft) {
			d.Title = req.Title
			d.Description = req.Description
			d.Icon = req.Icon
			d.Color = req.Color
			d.OrderIndex = req.OrderIndex
		})
	}, http.StatusCreated)
}

// UpdateSection edits the fields present in the body
// PATCH /api/admin/sections/{id}
func (h *AdminHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req sectionPatch
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.submit(w, r, func(ed *admin.Editor) error {
		c := h.registry.Get(httputil.SessionFromContext(r.Context()))
		section, err := c.LookupSection(r.Context(), id)
		if err != nil {
			return err
		}
		if err := ed.OpenEdit(admin.SectionEntity(&section)); err != nil {
			return err
		}
		return ed.Update(func(d *admin.Draft) {
			req.Title.Apply(&d.Title)
			req.Description.Apply(&d.Description)
			req.Icon.Apply(&d.Icon)
			req.Color.Apply(&d.Color)
			if req.OrderIndex != nil {
				d.OrderIndex = req.OrderIndex
			}
		})
	}, http.StatusOK)
}

// DeleteSection removes a section and its sub-items
// DELETE /api/admin/sections/{id}
func (h *AdminHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.remove(w, r, admin.KindSection, id, "")
}

// CreateSubItem adds a sub-item to a section
// POST /api/admin/sections/{id}/sub-items
func (h *AdminHandler) CreateSubItem(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req subItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.submit(w, r, func(ed *admin.Editor) error {
		ed.OpenCreate(admin.KindSubItem, sectionID)
		return ed.Update(func(d *admin.Draft) {
			d.Title = req.Title
			d.Description = req.Description
			if req.Type != "" {
				d.Type = req.Type
			}
			d.OrderIndex = req.OrderIndex
			d.MediaItems = req.MediaItems
			d.Content = req.Content
		})
	}, http.StatusCreated)
}

// UpdateSubItem edits the fields present in the body. The owning section
// cannot change.
// PATCH /api/admin/sub-items/{id}
func (h *AdminHandler) UpdateSubItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req subItemPatch
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.submit(w, r, func(ed *admin.Editor) error {
		if err := h.openSubItem(r.Context(), ed, id); err != nil {
			return err
		}
		return ed.Update(func(d *admin.Draft) {
			req.Title.Apply(&d.Title)
			req.Description.Apply(&d.Description)
			req.Type.Apply(&d.Type)
			if req.OrderIndex != nil {
				d.OrderIndex = req.OrderIndex
			}
			if req.MediaItems != nil {
				d.MediaItems = *req.MediaItems
			}
			if req.Content != nil {
				d.Content = *req.Content
			}
		})
	}, http.StatusOK)
}

// DeleteSubItem removes a sub-item
// DELETE /api/admin/sections/{sectionID}/sub-items/{id}
func (h *AdminHandler) DeleteSubItem(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := pathID(w, r, "sectionID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.remove(w, r, admin.KindSubItem, id, sectionID)
}

// openSubItem loads the sub-item into the editor
func (h *AdminHandler) openSubItem(ctx context.Context, ed *admin.Editor, id string) error {
	c := h.registry.Get(httputil.SessionFromContext(ctx))
	item, err := c.LookupSubItem(ctx, id)
	if err != nil {
		return err
	}
	return ed.OpenEdit(admin.SubItemEntity(&item))
}

// submit prepares the editor with fill, submits it and responds with the
// refreshed state.
func (h *AdminHandler) submit(w http.ResponseWriter, r *http.Request, fill func(ed *admin.Editor) error, status int) {
	c, err := h.controller(r.Context())
	if err != nil {
		h.respondControllerError(w, err)
		return
	}

	ed := c.Editor()
	if err := fill(ed); err != nil {
		h.respondControllerError(w, err)
		return
	}
	if err := ed.Submit(r.Context()); err != nil {
		h.respondControllerError(w, err)
		return
	}
	h.logger.Info("admin save", "user_id", httputil.GetUserID(r), "method", r.Method, "path", r.URL.Path)
	httputil.RespondJSON(w, status, c.Snapshot())
}

func (h *AdminHandler) remove(w http.ResponseWriter, r *http.Request, kind admin.Kind, id, sectionID string) {
	c, err := h.controller(r.Context())
	if err != nil {
		h.respondControllerError(w, err)
		return
	}
	if err := c.Remove(r.Context(), kind, id, sectionID); err != nil {
		h.respondControllerError(w, err)
		return
	}
	h.logger.Info("admin remove", "user_id", httputil.GetUserID(r), "kind", kind, "id", id)
	httputil.RespondJSON(w, http.StatusOK, c.Snapshot())
}

func (h *AdminHandler) respondControllerError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSessionRequired) {
		h.respondLoginRequired(w)
		return
	}
	handleError(w, err)
}

func (h *AdminHandler) respondLoginRequired(w http.ResponseWriter) {
	httputil.RespondErrorWithExtras(w, http.StatusUnauthorized, domain.ErrSessionRequired.Error(), map[string]interface{}{
		"redirect": admin.LoginPath,
	})
}
