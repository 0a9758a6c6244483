package httputil

import (
	"context"
	"net/http"

	"portfolio/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey  contextKey = "userID"
	sessionKey contextKey = "session"
)

// WithSession attaches an authenticated session (and its user ID) to the request
func WithSession(r *http.Request, session *models.Session) *http.Request {
	ctx := context.WithValue(r.Context(), sessionKey, session)
	ctx = context.WithValue(ctx, userIDKey, session.UserID)
	return r.WithContext(ctx)
}

// SessionFromContext returns the session stored by WithSession, or nil
func SessionFromContext(ctx context.Context) *models.Session {
	session, _ := ctx.Value(sessionKey).(*models.Session)
	return session
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}
