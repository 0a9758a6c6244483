package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/portfolio"
	"portfolio/internal/email"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memMessages struct {
	stored    []models.ContactMessage
	createErr error
}

func (m *memMessages) Create(ctx context.Context, message *models.ContactMessage) error {
	if m.createErr != nil {
		return m.createErr
	}
	message.ID = "m" + strconv.Itoa(len(m.stored)+1)
	m.stored = append(m.stored, *message)
	return nil
}

func (m *memMessages) List(ctx context.Context) ([]models.ContactMessage, error) {
	return m.stored, nil
}

func (m *memMessages) Delete(ctx context.Context, id string) error {
	for i, msg := range m.stored {
		if msg.ID == id {
			m.stored = append(m.stored[:i], m.stored[i+1:]...)
			return nil
		}
	}
	return &domain.NotFoundError{Message: "message not found"}
}

type memCategories struct {
	byName    map[string]models.ContactCategory
	lookupErr error
}

func newMemCategories(categories ...models.ContactCategory) *memCategories {
	m := &memCategories{byName: map[string]models.ContactCategory{}}
	for _, c := range categories {
		m.byName[strings.ToLower(c.Name)] = c
	}
	return m
}

func (m *memCategories) Create(ctx context.Context, category *models.ContactCategory) error {
	if existing, ok := m.byName[strings.ToLower(category.Name)]; ok {
		return &domain.ConflictError{Message: "category already exists", ResourceType: "category", ResourceID: existing.ID}
	}
	category.ID = "c-" + strings.ToLower(category.Name)
	m.byName[strings.ToLower(category.Name)] = *category
	return nil
}

func (m *memCategories) GetByName(ctx context.Context, name string) (*models.ContactCategory, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	c, ok := m.byName[strings.ToLower(name)]
	if !ok {
		return nil, &domain.NotFoundError{Message: "category not found"}
	}
	return &c, nil
}

func (m *memCategories) List(ctx context.Context) ([]models.ContactCategory, error) {
	out := make([]models.ContactCategory, 0, len(m.byName))
	for _, c := range m.byName {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCategories) Update(ctx context.Context, category *models.ContactCategory) error {
	for key, c := range m.byName {
		if c.ID == category.ID {
			delete(m.byName, key)
			m.byName[strings.ToLower(category.Name)] = *category
			return nil
		}
	}
	return &domain.NotFoundError{Message: "category not found"}
}

func (m *memCategories) Delete(ctx context.Context, id string) error {
	for key, c := range m.byName {
		if c.ID == id {
			delete(m.byName, key)
			return nil
		}
	}
	return &domain.NotFoundError{Message: "category not found"}
}

type memConfig struct {
	values map[string]string
	err    error
}

func (m *memConfig) Get(ctx context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	v, ok := m.values[key]
	if !ok {
		return "", &domain.NotFoundError{Message: "config key not found"}
	}
	return v, nil
}

func (m *memConfig) Set(ctx context.Context, key, value string) error {
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

// recordingSender captures every message; keys records the API key each
// sender was built with.
type recordingSender struct {
	sent []*email.Message
	keys []string
	err  error
}

func (s *recordingSender) factory() email.SenderFactory {
	return func(apiKey string) email.Sender {
		s.keys = append(s.keys, apiKey)
		return s
	}
}

func (s *recordingSender) Send(ctx context.Context, msg *email.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, msg)
	return "email-1", nil
}

var errRejected = errors.New("422: domain not verified")
