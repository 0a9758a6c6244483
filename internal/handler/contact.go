package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"portfolio/internal/domain"
	portfolioSvc "portfolio/internal/domain/services/portfolio"
	"portfolio/internal/httputil"
)

// ContactHandler relays the public contact form and manages categories
// and stored messages for the admin.
type ContactHandler struct {
	relay   portfolioSvc.ContactRelay
	service portfolioSvc.ContactService
	logger  *slog.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(relay portfolioSvc.ContactRelay, service portfolioSvc.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		relay:   relay,
		service: service,
		logger:  logger,
	}
}

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// Send relays a contact submission by email. Only POST is accepted.
// /api/contact
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		httputil.RespondJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method not allowed"})
		return
	}

	var req portfolioSvc.ContactRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	id, err := h.relay.Send(r.Context(), &req)
	if err != nil {
		status, body := contactFailure(err)
		h.logger.Error("contact relay failed", "status", status, "error", err)
		httputil.RespondJSON(w, status, map[string]string{"error": body})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contactResponse{
		Success: true,
		Message: "Email sent successfully",
		ID:      id,
	})
}

// contactFailure picks the status and message for a relay error.
// Validation and provider errors are shown; anything else is generic.
func contactFailure(err error) (int, string) {
	if errors.Is(err, domain.ErrValidation) {
		return http.StatusBadRequest, err.Error()
	}
	var sendErr *domain.EmailSendError
	if errors.As(err, &sendErr) {
		return sendErr.StatusCode(), sendErr.Error()
	}
	return http.StatusInternalServerError, "Failed to send email"
}

// ListCategories returns all contact categories, newest first
// GET /api/admin/contact/categories
func (h *ContactHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, categories)
}

// CreateCategory adds a contact category
// POST /api/admin/contact/categories
// Returns 201 if created, 409 with the existing id if the name is taken
func (h *ContactHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req portfolioSvc.CategoryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, category)
}

// UpdateCategory replaces a category's name and notification address
// PATCH /api/admin/contact/categories/{id}
func (h *ContactHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req portfolioSvc.CategoryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, category)
}

// DeleteCategory removes a category
// DELETE /api/admin/contact/categories/{id}
func (h *ContactHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMessages returns stored submissions, newest first
// GET /api/admin/contact/messages
func (h *ContactHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListMessages(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, messages)
}

// DeleteMessage removes a stored submission
// DELETE /api/admin/contact/messages/{id}
func (h *ContactHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteMessage(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
