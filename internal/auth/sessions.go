package auth

import (
	"context"
	"sync"
	"time"

	"portfolio/internal/domain/models"
	"portfolio/internal/httputil"
)

// RequestSessions reads the session the auth middleware attached to the
// request context. Used by the HTTP server.
type RequestSessions struct{}

// CurrentSession returns the request's session, or nil when unauthenticated
func (RequestSessions) CurrentSession(ctx context.Context) (*models.Session, error) {
	return httputil.SessionFromContext(ctx), nil
}

// StaticSession holds one session obtained at startup. Used by the CLI.
type StaticSession struct {
	mu      sync.RWMutex
	session *models.Session
	now     func() time.Time
}

// NewStaticSession wraps session (which may be nil)
func NewStaticSession(session *models.Session) *StaticSession {
	return &StaticSession{session: session, now: time.Now}
}

// CurrentSession returns the held session while it is unexpired
func (s *StaticSession) CurrentSession(ctx context.Context) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil || s.session.Expired(s.now()) {
		return nil, nil
	}
	return s.session, nil
}

// Clear forgets the session (after sign-out)
func (s *StaticSession) Clear() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}

// Set replaces the held session (after sign-in)
func (s *StaticSession) Set(session *models.Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
}
