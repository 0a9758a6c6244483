package admin

import (
	"context"
	"errors"
	"testing"

	portfolio "portfolio/internal/domain/models/portfolio"
)

// recordingSaver captures submitted drafts
type recordingSaver struct {
	drafts []Draft
	err    error
}

func (s *recordingSaver) Save(ctx context.Context, d Draft) error {
	s.drafts = append(s.drafts, d)
	return s.err
}

func TestEditorOpenEditPreloadsFields(t *testing.T) {
	ed := NewEditor(&recordingSaver{})
	item := &portfolio.SubItem{
		ID:          "i1",
		SectionID:   "s1",
		Title:       "Past Events",
		Description: "Gatherings",
		OrderIndex:  3,
		MediaItems:  []portfolio.MediaItem{{URL: "dQw4w9WgXcQ", Type: portfolio.MediaTypeYouTube}},
	}

	if err := ed.OpenEdit(SubItemEntity(item)); err != nil {
		t.Fatalf("OpenEdit: %v", err)
	}
	st := ed.State()
	if st.Mode != ModeEdit || st.Draft == nil {
		t.Fatalf("state = %+v", st)
	}
	d := st.Draft
	if d.ID != "i1" || d.SectionID != "s1" || d.Title != "Past Events" || *d.OrderIndex != 3 {
		t.Errorf("draft = %+v", d)
	}
	if d.Type != portfolio.SubItemTypeGallery {
		t.Errorf("type = %q, want gallery default", d.Type)
	}

	item.MediaItems[0].URL = "changed"
	if ed.State().Draft.MediaItems[0].URL != "dQw4w9WgXcQ" {
		t.Error("draft shares media with the entity")
	}
}

func TestEditorOpenEditRejectsUntaggedEntity(t *testing.T) {
	ed := NewEditor(&recordingSaver{})
	if err := ed.OpenEdit(Entity{Kind: KindSection}); err == nil {
		t.Error("expected error for an entity without a section")
	}
	if ed.State().Mode != ModeClosed {
		t.Error("editor opened for an invalid entity")
	}
}

func TestEditorKeepsIdentity(t *testing.T) {
	saver := &recordingSaver{}
	ed := NewEditor(saver)
	_ = ed.OpenEdit(SectionEntity(&portfolio.Section{ID: "s1", Title: "Events", Description: "d"}))

	_ = ed.Update(func(d *Draft) {
		d.ID = "other"
		d.Kind = KindSubItem
		d.Title = "Renamed"
	})
	if err := ed.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	got := saver.drafts[0]
	if got.ID != "s1" || got.Kind != KindSection || got.Title != "Renamed" {
		t.Errorf("saved draft = %+v", got)
	}
}

func TestEditorSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		section string
		fill    func(d *Draft)
		wantMsg string
	}{
		{name: "blank title", kind: KindSection, fill: func(d *Draft) { d.Title = "   "; d.Description = "x" }, wantMsg: "Title is required"},
		{name: "blank description", kind: KindSection, fill: func(d *Draft) { d.Title = "x" }, wantMsg: "Description is required"},
		{name: "sub-item without section", kind: KindSubItem, fill: func(d *Draft) { d.Title = "x"; d.Description = "y" }, wantMsg: "section_id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := &recordingSaver{}
			ed := NewEditor(saver)
			ed.OpenCreate(tt.kind, tt.section)
			_ = ed.Update(tt.fill)

			err := ed.Submit(context.Background())
			if err == nil || err.Error() != tt.wantMsg {
				t.Fatalf("error = %v, want %q", err, tt.wantMsg)
			}
			if len(saver.drafts) != 0 {
				t.Error("invalid draft reached the saver")
			}
		})
	}
}

func TestEditorSaveFailureKeepsDialogOpen(t *testing.T) {
	saver := &recordingSaver{err: errors.New("store down")}
	ed := NewEditor(saver)
	ed.OpenCreate(KindSubItem, "s1")
	_ = ed.Update(func(d *Draft) { d.Title = "x"; d.Description = "y" })

	if err := ed.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	st := ed.State()
	if st.Mode != ModeCreate || st.Error != "store down" {
		t.Errorf("state = %+v", st)
	}

	ed.Close()
	if err := ed.Submit(context.Background()); !errors.Is(err, ErrEditorClosed) {
		t.Errorf("submit after close = %v, want ErrEditorClosed", err)
	}
	if err := ed.SetMediaItems(nil); !errors.Is(err, ErrEditorClosed) {
		t.Errorf("SetMediaItems after close = %v", err)
	}
}
