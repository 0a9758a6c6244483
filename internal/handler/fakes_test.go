package handler

import (
	"context"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/google/uuid"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models"
	portfolio "portfolio/internal/domain/models/portfolio"
	portfolioSvc "portfolio/internal/domain/services/portfolio"
	"portfolio/internal/httputil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type plainMarkdown struct{}

func (plainMarkdown) MustRender(src string) template.HTML {
	return template.HTML(template.HTMLEscapeString(src))
}

// recordingPages remembers the last page rendered instead of executing it
type recordingPages struct {
	page string
	data interface{}
	err  error
}

func (p *recordingPages) Render(w io.Writer, page string, data interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.page, p.data = page, data
	_, err := io.WriteString(w, "<html>"+page+"</html>")
	return err
}

// memContent is an in-memory ContentService with uuid ids
type memContent struct {
	mu       sync.Mutex
	sections []portfolio.Section
	subItems map[string][]portfolio.SubItem
	fail     map[string]error
}

var _ portfolioSvc.ContentService = (*memContent)(nil)

func newMemContent() *memContent {
	return &memContent{subItems: map[string][]portfolio.SubItem{}, fail: map[string]error{}}
}

func (m *memContent) addSection(title string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := portfolio.Section{ID: uuid.NewString(), Title: title, OrderIndex: len(m.sections)}
	m.sections = append(m.sections, s)
	return s.ID
}

func (m *memContent) addSubItem(sectionID, title string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := portfolio.SubItem{
		ID:          uuid.NewString(),
		SectionID:   sectionID,
		Title:       title,
		Description: title + " text",
		Type:        portfolio.SubItemTypeGallery,
		MediaItems:  []portfolio.MediaItem{},
	}
	m.subItems[sectionID] = append(m.subItems[sectionID], item)
	return item.ID
}

func (m *memContent) ListSections(ctx context.Context) ([]portfolio.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail["ListSections"]; err != nil {
		return nil, err
	}
	out := append([]portfolio.Section{}, m.sections...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (m *memContent) ListSubItems(ctx context.Context, sectionID string) ([]portfolio.SubItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]portfolio.SubItem(nil), m.subItems[sectionID]...), nil
}

func (m *memContent) GetSubItem(ctx context.Context, id string) (*portfolio.SubItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, items := range m.subItems {
		for _, item := range items {
			if item.ID == id {
				return &item, nil
			}
		}
	}
	return nil, &domain.NotFoundError{Message: "sub-item not found"}
}

func (m *memContent) CreateSection(ctx context.Context, req *portfolioSvc.CreateSectionRequest) (*portfolio.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := portfolio.Section{ID: uuid.NewString(), Title: req.Title, Description: req.Description, Icon: req.Icon, Color: req.Color}
	if req.OrderIndex != nil {
		s.OrderIndex = *req.OrderIndex
	}
	m.sections = append(m.sections, s)
	return &s, nil
}

func (m *memContent) UpdateSection(ctx context.Context, id string, req *portfolioSvc.UpdateSectionRequest) (*portfolio.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sections {
		if m.sections[i].ID == id {
			s := &m.sections[i]
			s.Title, s.Description, s.Icon, s.Color = req.Title, req.Description, req.Icon, req.Color
			out := *s
			return &out, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "section not found"}
}

func (m *memContent) DeleteSection(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.sections {
		if s.ID == id {
			m.sections = append(m.sections[:i], m.sections[i+1:]...)
			delete(m.subItems, id)
			return nil
		}
	}
	return &domain.NotFoundError{Message: "section not found"}
}

func (m *memContent) CreateSubItem(ctx context.Context, sectionID string, req *portfolioSvc.CreateSubItemRequest) (*portfolio.SubItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := portfolio.SubItem{
		ID:          uuid.NewString(),
		SectionID:   sectionID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		MediaItems:  req.MediaItems,
		MediaURLs:   req.MediaURLs,
		MediaTypes:  req.MediaTypes,
	}
	m.subItems[sectionID] = append(m.subItems[sectionID], item)
	return &item, nil
}

func (m *memContent) UpdateSubItem(ctx context.Context, id string, req *portfolioSvc.UpdateSubItemRequest) (*portfolio.SubItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sectionID, items := range m.subItems {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			item := &m.subItems[sectionID][i]
			item.Title, item.Description, item.Type = req.Title, req.Description, req.Type
			item.MediaItems, item.MediaURLs, item.MediaTypes = req.MediaItems, req.MediaURLs, req.MediaTypes
			out := *item
			return &out, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "sub-item not found"}
}

func (m *memContent) DeleteSubItem(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sectionID, items := range m.subItems {
		for i := range items {
			if items[i].ID == id {
				m.subItems[sectionID] = append(items[:i], items[i+1:]...)
				return nil
			}
		}
	}
	return &domain.NotFoundError{Message: "sub-item not found"}
}

// fakeContact serves categories; createErr makes CreateCategory fail
type fakeContact struct {
	categories []portfolio.ContactCategory
	listErr    error
	createErr  error
}

func (f *fakeContact) ListCategories(ctx context.Context) ([]portfolio.ContactCategory, error) {
	return f.categories, f.listErr
}

func (f *fakeContact) CreateCategory(ctx context.Context, req *portfolioSvc.CategoryRequest) (*portfolio.ContactCategory, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c := portfolio.ContactCategory{ID: uuid.NewString(), Name: req.Name, NotificationEmail: req.NotificationEmail}
	f.categories = append(f.categories, c)
	return &c, nil
}

func (f *fakeContact) UpdateCategory(ctx context.Context, id string, req *portfolioSvc.CategoryRequest) (*portfolio.ContactCategory, error) {
	return nil, &domain.NotFoundError{Message: "category not found"}
}

func (f *fakeContact) DeleteCategory(ctx context.Context, id string) error { return nil }

func (f *fakeContact) ListMessages(ctx context.Context) ([]portfolio.ContactMessage, error) {
	return []portfolio.ContactMessage{}, nil
}

func (f *fakeContact) DeleteMessage(ctx context.Context, id string) error { return nil }

// fakeRelay returns id or err and keeps the last request
type fakeRelay struct {
	id   string
	err  error
	last *portfolioSvc.ContactRequest
}

func (f *fakeRelay) Send(ctx context.Context, req *portfolioSvc.ContactRequest) (string, error) {
	f.last = req
	return f.id, f.err
}

// fakeAuth accepts one email/password pair
type fakeAuth struct {
	email, password string
	signInErr       error
	signedOut       []string
}

var errAuthDown = errors.New("auth service unavailable")

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	if email != f.email || password != f.password {
		return nil, &domain.UnauthorizedError{Message: "Invalid login credentials"}
	}
	return &models.Session{AccessToken: "token-1", UserID: "admin-1", Email: email, SessionID: "sess-1"}, nil
}

func (f *fakeAuth) SignOut(ctx context.Context, accessToken string) error {
	f.signedOut = append(f.signedOut, accessToken)
	return nil
}

// recordingDropper remembers dropped sessions
type recordingDropper struct {
	dropped []*models.Session
}

func (d *recordingDropper) Drop(session *models.Session) {
	d.dropped = append(d.dropped, session)
}

func adminSession() *models.Session {
	return &models.Session{AccessToken: "token-1", UserID: "admin-1", SessionID: "sess-1"}
}

func withAdmin(r *http.Request) *http.Request {
	return httputil.WithSession(r, adminSession())
}
