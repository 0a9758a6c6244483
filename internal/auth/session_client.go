package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models"
	"portfolio/internal/domain/services"
)

// SessionClient signs admins in and out with Supabase Auth (GoTrue).
// Issued access tokens are verified through the JWTVerifier so the session
// carries the same claims the middleware sees.
type SessionClient struct {
	client   supabaseClient
	verifier JWTVerifier
	now      func() time.Time
}

// NewSessionClient creates a session client using the project's anon key
func NewSessionClient(supabaseURL, anonKey string, verifier JWTVerifier) *SessionClient {
	return &SessionClient{
		client:   newSupabaseClient(supabaseURL, anonKey),
		verifier: verifier,
		now:      time.Now,
	}
}

var _ services.Authenticator = (*SessionClient)(nil)

type passwordGrant struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// SignIn exchanges credentials for a session
func (c *SessionClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	var tok tokenResponse
	err := c.client.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "",
		passwordGrant{Email: email, Password: password}, &tok)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			return nil, &domain.UnauthorizedError{Message: "Invalid login credentials"}
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}

	claims, err := c.verifier.VerifyToken(tok.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("verify issued token: %w", err)
	}

	session := models.SessionFromClaims(tok.AccessToken, claims)
	session.RefreshToken = tok.RefreshToken
	if session.ExpiresAt.IsZero() && tok.ExpiresIn > 0 {
		session.ExpiresAt = c.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	return session, nil
}

// SignOut revokes the session. A token the server no longer knows is not an error.
func (c *SessionClient) SignOut(ctx context.Context, accessToken string) error {
	err := c.client.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusNotFound) {
			return nil
		}
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}
