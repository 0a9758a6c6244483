package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models"
	"portfolio/internal/domain/services"
	"portfolio/internal/httputil"
	"portfolio/internal/service/admin"
	"portfolio/internal/web"
)

// SessionDropper forgets per-session admin state on sign-out
type SessionDropper interface {
	Drop(session *models.Session)
}

// AuthHandler signs the admin in and out
type AuthHandler struct {
	auth          services.Authenticator
	sessions      SessionDropper
	pages         PageRenderer
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthHandler creates a new auth handler. secureCookies marks the
// session cookie Secure (everywhere except local dev).
func NewAuthHandler(auth services.Authenticator, sessions SessionDropper, pages PageRenderer, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:          auth,
		sessions:      sessions,
		pages:         pages,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Redirect  string `json:"redirect"`
}

// LoginPage shows the sign-in form
// GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if httputil.SessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	h.renderLogin(w, r, http.StatusOK, "", "")
}

// LoginForm signs in from the HTML form
// POST /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, "", "Invalid form")
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))

	session, err := h.signIn(r, email, r.PostFormValue("password"))
	if err != nil {
		status := http.StatusInternalServerError
		message := "Sign in failed. Please try again."
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrValidation) {
			status = http.StatusUnauthorized
			message = err.Error()
		}
		h.renderLogin(w, r, status, email, message)
		return
	}

	httputil.SetSessionCookie(w, session.AccessToken, session.ExpiresAt, h.secureCookies)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Login signs in from JSON and sets the session cookie
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.signIn(r, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.SetSessionCookie(w, session.AccessToken, session.ExpiresAt, h.secureCookies)
	resp := loginResponse{
		UserID:   session.UserID,
		Email:    session.Email,
		Redirect: "/admin",
	}
	if !session.ExpiresAt.IsZero() {
		resp.ExpiresAt = session.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) signIn(r *http.Request, email, password string) (*models.Session, error) {
	if email == "" || password == "" {
		return nil, &domain.ValidationError{Message: "Email and password are required"}
	}
	session, err := h.auth.SignIn(r.Context(), email, password)
	if err != nil {
		h.logger.Warn("sign in failed", "email", email, "error", err)
		return nil, err
	}
	h.logger.Info("admin signed in", "user_id", session.UserID)
	return session, nil
}

// Logout ends the session and tells the client where to go
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.signOut(w, r)
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"redirect": admin.LoginPath})
}

// LogoutRedirect ends the session and redirects to the login page
// GET /logout
func (h *AuthHandler) LogoutRedirect(w http.ResponseWriter, r *http.Request) {
	h.signOut(w, r)
	http.Redirect(w, r, admin.LoginPath, http.StatusFound)
}

// signOut never fails: the local session is cleared even when the auth
// service cannot be reached.
func (h *AuthHandler) signOut(w http.ResponseWriter, r *http.Request) {
	if session := httputil.SessionFromContext(r.Context()); session != nil {
		if err := h.auth.SignOut(r.Context(), session.AccessToken); err != nil {
			h.logger.Warn("sign out failed", "user_id", session.UserID, "error", err)
		}
		h.sessions.Drop(session)
		h.logger.Info("admin signed out", "user_id", session.UserID)
	}
	httputil.ClearSessionCookie(w, h.secureCookies)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, email, message string) {
	renderPage(w, h.pages, h.logger, status, web.PageLogin, web.LoginPage{
		Base:  baseFor(r),
		Email: email,
		Error: message,
	})
}
