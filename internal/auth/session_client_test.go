package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models"
)

func gotrueServer(t *testing.T, tokenStatus, logoutStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("grant_type") != "password" {
			http.Error(w, "grant", http.StatusBadRequest)
			return
		}
		if r.Header.Get("apikey") != "anon" {
			http.Error(w, "apikey", http.StatusUnauthorized)
			return
		}
		var grant passwordGrant
		json.NewDecoder(r.Body).Decode(&grant)
		if tokenStatus != http.StatusOK {
			w.WriteHeader(tokenStatus)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "at-" + grant.Email,
			"refresh_token": "rt",
			"expires_in":    3600,
		})
	})
	mux.HandleFunc("POST /auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-admin@test.dev" {
			t.Errorf("logout authorization = %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(logoutStatus)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSignIn(t *testing.T) {
	expires := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	srv := gotrueServer(t, http.StatusOK, http.StatusNoContent)
	verifier := &fakeVerifier{claims: map[string]*models.SupabaseClaims{
		"at-admin@test.dev": claimsFor("u1", "admin@test.dev", "sess-1", expires),
	}}

	session, err := NewSessionClient(srv.URL, "anon", verifier).SignIn(context.Background(), "admin@test.dev", "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if session.UserID != "u1" || session.SessionID != "sess-1" || session.RefreshToken != "rt" {
		t.Errorf("session = %+v", session)
	}
	if !session.ExpiresAt.Equal(expires) {
		t.Errorf("expires = %v", session.ExpiresAt)
	}
}

func TestSignInExpiryFromResponse(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	srv := gotrueServer(t, http.StatusOK, http.StatusNoContent)
	verifier := &fakeVerifier{claims: map[string]*models.SupabaseClaims{
		"at-admin@test.dev": claimsFor("u1", "admin@test.dev", "", time.Time{}),
	}}
	c := NewSessionClient(srv.URL, "anon", verifier)
	c.now = func() time.Time { return now }

	session, err := c.SignIn(context.Background(), "admin@test.dev", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if want := now.Add(time.Hour); !session.ExpiresAt.Equal(want) {
		t.Errorf("expires = %v, want %v", session.ExpiresAt, want)
	}
}

func TestSignInFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantUnauth bool
	}{
		{"bad credentials", http.StatusBadRequest, true},
		{"server error", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := gotrueServer(t, tt.status, http.StatusNoContent)
			_, err := NewSessionClient(srv.URL, "anon", &fakeVerifier{}).SignIn(context.Background(), "admin@test.dev", "pw")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, domain.ErrUnauthorized); got != tt.wantUnauth {
				t.Errorf("unauthorized = %v, err %v", got, err)
			}
		})
	}
}

func TestSignInRejectsUnverifiableToken(t *testing.T) {
	srv := gotrueServer(t, http.StatusOK, http.StatusNoContent)
	_, err := NewSessionClient(srv.URL, "anon", &fakeVerifier{}).SignIn(context.Background(), "admin@test.dev", "pw")
	if err == nil {
		t.Fatal("expected verification error")
	}
}

func TestSignOut(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"ok", http.StatusNoContent, false},
		{"already gone", http.StatusUnauthorized, false},
		{"server error", http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := gotrueServer(t, http.StatusOK, tt.status)
			err := NewSessionClient(srv.URL, "anon", &fakeVerifier{}).SignOut(context.Background(), "at-admin@test.dev")
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v", err)
			}
		})
	}
}
