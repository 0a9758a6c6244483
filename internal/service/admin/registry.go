package admin

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"portfolio/internal/domain/models"
	"portfolio/internal/domain/services"
	portfolioSvc "portfolio/internal/domain/services/portfolio"
)

// Registry keeps one Controller per signed-in admin session so the editor
// and error banner survive between requests.
type Registry struct {
	mu       sync.Mutex
	content  portfolioSvc.ContentService
	sessions services.SessionChecker
	logger   *slog.Logger
	now      func() time.Time

	entries map[string]*registryEntry
}

type registryEntry struct {
	controller *Controller
	lastUsed   time.Time
}

// NewRegistry creates an empty registry
func NewRegistry(content portfolioSvc.ContentService, sessions services.SessionChecker, logger *slog.Logger) *Registry {
	return &Registry{
		content:  content,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		entries:  make(map[string]*registryEntry),
	}
}

// Get returns the controller for session, creating it on first use
func (r *Registry) Get(session *models.Session) *Controller {
	key := registryKey(session)

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		entry = &registryEntry{
			controller: NewController(r.content, r.sessions, r.logger.With("session", key)),
		}
		r.entries[key] = entry
	}
	entry.lastUsed = r.now()
	return entry.controller
}

// Drop forgets the controller for session (on sign-out)
func (r *Registry) Drop(session *models.Session) {
	r.mu.Lock()
	delete(r.entries, registryKey(session))
	r.mu.Unlock()
}

// Len returns the number of live controllers
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Prune drops controllers unused for longer than maxIdle and returns how many
func (r *Registry) Prune(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, entry := range r.entries {
		if entry.lastUsed.Before(cutoff) {
			delete(r.entries, key)
			removed++
		}
	}
	return removed
}

// Run prunes idle controllers every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Prune(maxIdle); n > 0 {
				r.logger.Debug("pruned idle admin sessions", "count", n)
			}
		}
	}
}

func registryKey(session *models.Session) string {
	if session == nil {
		return ""
	}
	if session.SessionID != "" {
		return session.SessionID
	}
	return session.UserID
}
