package admin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models"
	portfolio "portfolio/internal/domain/models/portfolio"
	portfolioSvc "portfolio/internal/domain/services/portfolio"
)

// fakeContent is an in-memory ContentService. Setting fail[method] makes
// that method return the error.
type fakeContent struct {
	mu       sync.Mutex
	sections []portfolio.Section
	subItems map[string][]portfolio.SubItem
	nextID   int
	fail     map[string]error
	calls    []string

	lastCreateSubItem *portfolioSvc.CreateSubItemRequest
	lastUpdateSubItem *portfolioSvc.UpdateSubItemRequest
	lastCreateSection *portfolioSvc.CreateSectionRequest
}

var _ portfolioSvc.ContentService = (*fakeContent)(nil)

func newFakeContent() *fakeContent {
	return &fakeContent{
		subItems: map[string][]portfolio.SubItem{},
		fail:     map[string]error{},
	}
}

func (f *fakeContent) record(method string) error {
	f.calls = append(f.calls, method)
	return f.fail[method]
}

func (f *fakeContent) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *fakeContent) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

// addSection seeds a section directly
func (f *fakeContent) addSection(title string, order int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := portfolio.Section{ID: f.id("s"), Title: title, Description: title + " text", OrderIndex: order}
	f.sections = append(f.sections, s)
	return s.ID
}

// addSubItem seeds a sub-item directly
func (f *fakeContent) addSubItem(sectionID, title string, order int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := portfolio.SubItem{
		ID:          f.id("i"),
		SectionID:   sectionID,
		Title:       title,
		Description: title + " text",
		OrderIndex:  order,
		Type:        portfolio.SubItemTypeGallery,
		MediaItems:  []portfolio.MediaItem{},
	}
	f.subItems[sectionID] = append(f.subItems[sectionID], item)
	return item.ID
}

func (f *fakeContent) ListSections(ctx context.Context) ([]portfolio.Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListSections"); err != nil {
		return nil, err
	}
	out := append([]portfolio.Section{}, f.sections...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (f *fakeContent) ListSubItems(ctx context.Context, sectionID string) ([]portfolio.SubItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListSubItems"); err != nil {
		return nil, err
	}
	out := append([]portfolio.SubItem{}, f.subItems[sectionID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (f *fakeContent) GetSubItem(ctx context.Context, id string) (*portfolio.SubItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetSubItem"); err != nil {
		return nil, err
	}
	for _, items := range f.subItems {
		for _, item := range items {
			if item.ID == id {
				return &item, nil
			}
		}
	}
	return nil, &domain.NotFoundError{Message: "sub-item not found"}
}

func (f *fakeContent) CreateSection(ctx context.Context, req *portfolioSvc.CreateSectionRequest) (*portfolio.Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateSection"); err != nil {
		return nil, err
	}
	f.lastCreateSection = req
	s := portfolio.Section{ID: f.id("s"), Title: req.Title, Description: req.Description, Icon: req.Icon, Color: req.Color}
	if req.OrderIndex != nil {
		s.OrderIndex = *req.OrderIndex
	}
	f.sections = append(f.sections, s)
	return &s, nil
}

func (f *fakeContent) UpdateSection(ctx context.Context, id string, req *portfolioSvc.UpdateSectionRequest) (*portfolio.Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateSection"); err != nil {
		return nil, err
	}
	for i := range f.sections {
		if f.sections[i].ID == id {
			s := &f.sections[i]
			s.Title, s.Description, s.Icon, s.Color = req.Title, req.Description, req.Icon, req.Color
			if req.OrderIndex != nil {
				s.OrderIndex = *req.OrderIndex
			}
			out := *s
			return &out, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "section not found"}
}

func (f *fakeContent) DeleteSection(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteSection"); err != nil {
		return err
	}
	for i, s := range f.sections {
		if s.ID == id {
			f.sections = append(f.sections[:i], f.sections[i+1:]...)
			delete(f.subItems, id)
			return nil
		}
	}
	return &domain.NotFoundError{Message: "section not found"}
}

func (f *fakeContent) CreateSubItem(ctx context.Context, sectionID string, req *portfolioSvc.CreateSubItemRequest) (*portfolio.SubItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateSubItem"); err != nil {
		return nil, err
	}
	f.lastCreateSubItem = req
	item := portfolio.SubItem{
		ID:          f.id("i"),
		SectionID:   sectionID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		MediaItems:  req.MediaItems,
		MediaURLs:   req.MediaURLs,
		MediaTypes:  req.MediaTypes,
		Content:     req.Content,
	}
	if req.OrderIndex != nil {
		item.OrderIndex = *req.OrderIndex
	}
	f.subItems[sectionID] = append(f.subItems[sectionID], item)
	return &item, nil
}

func (f *fakeContent) UpdateSubItem(ctx context.Context, id string, req *portfolioSvc.UpdateSubItemRequest) (*portfolio.SubItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateSubItem"); err != nil {
		return nil, err
	}
	f.lastUpdateSubItem = req
	for sectionID, items := range f.subItems {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			item := &f.subItems[sectionID][i]
			item.Title, item.Description, item.Type = req.Title, req.Description, req.Type
			item.MediaItems, item.MediaURLs, item.MediaTypes = req.MediaItems, req.MediaURLs, req.MediaTypes
			item.Content = req.Content
			if req.OrderIndex != nil {
				item.OrderIndex = *req.OrderIndex
			}
			out := *item
			return &out, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "sub-item not found"}
}

func (f *fakeContent) DeleteSubItem(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteSubItem"); err != nil {
		return err
	}
	for sectionID, items := range f.subItems {
		for i := range items {
			if items[i].ID == id {
				f.subItems[sectionID] = append(items[:i], items[i+1:]...)
				return nil
			}
		}
	}
	return &domain.NotFoundError{Message: "sub-item not found"}
}

// fakeSessions returns session, which may be nil
type fakeSessions struct {
	session *models.Session
}

func (f *fakeSessions) CurrentSession(ctx context.Context) (*models.Session, error) {
	return f.session, nil
}

func signedIn() *fakeSessions {
	return &fakeSessions{session: &models.Session{UserID: "admin-1", SessionID: "sess-1"}}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
