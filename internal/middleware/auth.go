package middleware

import (
	"log/slog"
	"net/http"

	"portfolio/internal/auth"
	"portfolio/internal/domain/models"
	"portfolio/internal/httputil"
)

// OptionalAuth attaches a session to the request when it carries a valid
// token (Authorization header or session cookie). Invalid or missing tokens
// pass through unauthenticated.
func OptionalAuth(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := httputil.BearerToken(r); token != "" {
				claims, err := verifier.VerifyToken(token)
				if err == nil {
					r = httputil.WithSession(r, models.SessionFromClaims(token, claims))
				} else {
					logger.Debug("ignoring invalid session token", "path", r.URL.Path)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without a session with 401.
// It must run after OptionalAuth.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if httputil.SessionFromContext(r.Context()) == nil {
			httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
