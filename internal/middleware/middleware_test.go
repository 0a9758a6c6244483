package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models"
	"portfolio/internal/httputil"
)

type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*models.SupabaseClaims, error) {
	if token != "good" {
		return nil, domain.ErrUnauthorized
	}
	c := &models.SupabaseClaims{Email: "admin@test.dev", SessionID: "sess-1"}
	c.Subject = "u1"
	return c, nil
}

func (stubVerifier) Close() error { return nil }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOptionalAuth(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		wantUser string
	}{
		{"valid", "good", "u1"},
		{"invalid passes through", "bad", ""},
		{"none", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			var called bool
			h := OptionalAuth(stubVerifier{}, discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUser = httputil.GetUserID(r)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			if !called {
				t.Fatal("next not called")
			}
			if gotUser != tt.wantUser {
				t.Errorf("user = %q, want %q", gotUser, tt.wantUser)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/state", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httputil.WithSession(httptest.NewRequest(http.MethodGet, "/api/admin/state", nil), &models.Session{UserID: "u1"})
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTeapot {
		t.Errorf("signed-in status = %d", rec.Code)
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestRequestLogKeepsStatus(t *testing.T) {
	h := RequestLog(discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}
