package services

import (
	"context"

	"portfolio/internal/domain/models"
)

// SessionChecker reports the session the current operation runs under.
// It returns (nil, nil) when nobody is signed in.
type SessionChecker interface {
	CurrentSession(ctx context.Context) (*models.Session, error)
}

// Authenticator signs admins in and out of the hosted auth service.
type Authenticator interface {
	// SignIn exchanges email and password for a session.
	// Bad credentials return domain.ErrUnauthorized.
	SignIn(ctx context.Context, email, password string) (*models.Session, error)

	// SignOut revokes the session behind accessToken.
	SignOut(ctx context.Context, accessToken string) error
}
