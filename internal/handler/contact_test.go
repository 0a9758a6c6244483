package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio/internal/domain"
)

func TestContactSend(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		relayErr   error
		wantStatus int
		wantKey    string
		wantValue  string
	}{
		{
			name:       "success",
			method:     http.MethodPost,
			body:       `{"name":"Ana","email":"ana@test.dev","subject":"General","message":"Hi"}`,
			wantStatus: http.StatusOK,
			wantKey:    "message",
			wantValue:  "Email sent successfully",
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			wantStatus: http.StatusMethodNotAllowed,
			wantKey:    "message",
			wantValue:  "Method not allowed",
		},
		{
			name:       "bad json",
			method:     http.MethodPost,
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
			wantValue:  "Invalid request body",
		},
		{
			name:       "missing fields",
			method:     http.MethodPost,
			body:       `{"name":"Ana"}`,
			relayErr:   &domain.ValidationError{Message: "Missing required fields"},
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
			wantValue:  "Missing required fields",
		},
		{
			name:       "provider rejected",
			method:     http.MethodPost,
			body:       `{"name":"Ana","email":"ana@test.dev","message":"Hi"}`,
			relayErr:   &domain.EmailSendError{Err: errors.New("domain not verified")},
			wantStatus: http.StatusBadGateway,
			wantKey:    "error",
			wantValue:  "Failed to send email: domain not verified",
		},
		{
			name:       "unexpected",
			method:     http.MethodPost,
			body:       `{"name":"Ana","email":"ana@test.dev","message":"Hi"}`,
			relayErr:   errors.New("config table unreachable"),
			wantStatus: http.StatusInternalServerError,
			wantKey:    "error",
			wantValue:  "Failed to send email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			relay := &fakeRelay{id: "msg-1", err: tt.relayErr}
			h := NewContactHandler(relay, &fakeContact{}, testLogger())

			rec := httptest.NewRecorder()
			h.Send(rec, httptest.NewRequest(tt.method, "/api/contact", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body[tt.wantKey] != tt.wantValue {
				t.Errorf("%s = %v, want %q", tt.wantKey, body[tt.wantKey], tt.wantValue)
			}
		})
	}
}

func TestContactSendSuccessReturnsID(t *testing.T) {
	relay := &fakeRelay{id: "msg-42"}
	h := NewContactHandler(relay, &fakeContact{}, testLogger())

	rec := httptest.NewRecorder()
	h.Send(rec, httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"Ana","email":"ana@test.dev","subject":"Commissions","message":"Hi"}`)))

	var resp contactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.ID != "msg-42" {
		t.Errorf("response = %+v", resp)
	}
	if relay.last == nil || relay.last.Subject != "Commissions" {
		t.Errorf("relay got %+v", relay.last)
	}
}

func TestContactSendAllowHeader(t *testing.T) {
	h := NewContactHandler(&fakeRelay{}, &fakeContact{}, testLogger())
	rec := httptest.NewRecorder()
	h.Send(rec, httptest.NewRequest(http.MethodPut, "/api/contact", nil))

	if got := rec.Header().Get("Allow"); got != http.MethodPost {
		t.Errorf("Allow = %q", got)
	}
}

func TestCreateCategoryConflict(t *testing.T) {
	contact := &fakeContact{createErr: &domain.ConflictError{
		Message:      "category 'General' already exists",
		ResourceType: "category",
		ResourceID:   "c9",
	}}
	h := NewContactHandler(&fakeRelay{}, contact, testLogger())

	rec := httptest.NewRecorder()
	h.CreateCategory(rec, httptest.NewRequest(http.MethodPost, "/api/admin/contact/categories", strings.NewReader(`{"name":"General"}`)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeProblem(t, rec)["resource_id"]; got != "c9" {
		t.Errorf("resource_id = %v", got)
	}
}

func TestCreateCategory(t *testing.T) {
	contact := &fakeContact{}
	h := NewContactHandler(&fakeRelay{}, contact, testLogger())

	rec := httptest.NewRecorder()
	h.CreateCategory(rec, httptest.NewRequest(http.MethodPost, "/api/admin/contact/categories",
		strings.NewReader(`{"name":"Events","notification_email":"events@test.dev"}`)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(contact.categories) != 1 || contact.categories[0].NotificationEmail != "events@test.dev" {
		t.Errorf("categories = %+v", contact.categories)
	}
}
