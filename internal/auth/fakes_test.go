package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models"
)

// fakeVerifier accepts the tokens in claims
type fakeVerifier struct {
	claims map[string]*models.SupabaseClaims
}

func (v *fakeVerifier) VerifyToken(token string) (*models.SupabaseClaims, error) {
	c, ok := v.claims[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return c, nil
}

func (v *fakeVerifier) Close() error { return nil }

func claimsFor(userID, email, sessionID string, expires time.Time) *models.SupabaseClaims {
	c := &models.SupabaseClaims{Email: email, SessionID: sessionID, Role: "authenticated"}
	c.Subject = userID
	if !expires.IsZero() {
		c.ExpiresAt = jwt.NewNumericDate(expires)
	}
	return c
}
