package handler

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"portfolio/internal/domain"
	"portfolio/internal/httputil"
	"portfolio/internal/web"
)

// PageRenderer executes a named HTML page
type PageRenderer interface {
	Render(w io.Writer, page string, data interface{}) error
}

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrSessionRequired):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID reads a uuid path value, writing a 400 when it is malformed
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if _, err := uuid.Parse(id); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid "+name)
		return "", false
	}
	return id, true
}

func baseFor(r *http.Request) web.Base {
	return web.Base{
		SignedIn: httputil.SessionFromContext(r.Context()) != nil,
		Year:     time.Now().Year(),
	}
}

// renderPage executes page and writes it with status. Nothing is written
// when the template fails.
func renderPage(w http.ResponseWriter, pages PageRenderer, logger *slog.Logger, status int, page string, data interface{}) {
	var buf bytes.Buffer
	if err := pages.Render(&buf, page, data); err != nil {
		logger.Error("render page", "page", page, "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
