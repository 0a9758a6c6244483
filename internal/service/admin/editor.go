package admin

import (
	"context"
	"errors"
	"strings"
	"sync"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/portfolio"
)

// Mode is the editor dialog state.
type Mode string

const (
	ModeClosed Mode = "closed"
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Saver persists a submitted draft. The Controller implements it.
type Saver interface {
	Save(ctx context.Context, draft Draft) error
}

// EditorState is a read-only view of the editor
type EditorState struct {
	Mode  Mode   `json:"mode"`
	Draft *Draft `json:"draft,omitempty"`
	Error string `json:"error,omitempty"`
}

// ErrEditorClosed is returned when submitting or editing a closed editor.
var ErrEditorClosed = errors.New("editor is not open")

// Editor is the modal form for one section or sub-item:
// closed -> open(create) | open(edit) -> closed on a successful submit.
// A failed submit keeps the dialog open with the draft as typed.
type Editor struct {
	mu    sync.Mutex
	saver Saver
	mode  Mode
	draft Draft
	err   string
}

// NewEditor creates a closed editor that saves through saver
func NewEditor(saver Saver) *Editor {
	return &Editor{saver: saver, mode: ModeClosed}
}

// OpenCreate opens a blank form. sectionID is required for sub-items and
// ignored for sections.
func (e *Editor) OpenCreate(kind Kind, sectionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.mode = ModeCreate
	e.err = ""
	e.draft = Draft{Kind: kind}
	if kind == KindSubItem {
		e.draft.SectionID = sectionID
		e.draft.Type = models.SubItemTypeGallery
	}
}

// OpenEdit opens the form preloaded from entity
func (e *Editor) OpenEdit(entity Entity) error {
	draft, ok := draftFrom(entity)
	if !ok {
		return &domain.ValidationError{Message: "nothing to edit"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.mode = ModeEdit
	e.err = ""
	e.draft = draft
	return nil
}

// Update applies fn to the open draft
func (e *Editor) Update(fn func(d *Draft)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode == ModeClosed {
		return ErrEditorClosed
	}
	kind, id, sectionID := e.draft.Kind, e.draft.ID, e.draft.SectionID
	fn(&e.draft)
	// identity is fixed for the lifetime of the dialog
	e.draft.Kind, e.draft.ID = kind, id
	if id != "" {
		e.draft.SectionID = sectionID
	}
	return nil
}

// SetMediaItems replaces the draft's media items and nothing else
func (e *Editor) SetMediaItems(items []models.MediaItem) error {
	return e.Update(func(d *Draft) {
		d.MediaItems = append([]models.MediaItem(nil), items...)
	})
}

// Submit validates the draft and hands it to the saver.
func (e *Editor) Submit(ctx context.Context) error {
	e.mu.Lock()
	if e.mode == ModeClosed {
		e.mu.Unlock()
		return ErrEditorClosed
	}
	draft := e.draft.clone()
	e.mu.Unlock()

	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)

	if err := validateDraft(draft); err != nil {
		e.setError(err)
		return err
	}

	if err := e.saver.Save(ctx, draft); err != nil {
		e.setError(err)
		return err
	}

	e.Close()
	return nil
}

// Close discards the draft
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = ModeClosed
	e.draft = Draft{}
	e.err = ""
}

// State returns a copy of the editor state
func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := EditorState{Mode: e.mode, Error: e.err}
	if e.mode != ModeClosed {
		d := e.draft.clone()
		st.Draft = &d
	}
	return st
}

func (e *Editor) setError(err error) {
	e.mu.Lock()
	e.err = err.Error()
	e.mu.Unlock()
}

func validateDraft(d Draft) error {
	if d.Title == "" {
		return &domain.ValidationError{Message: "Title is required"}
	}
	if d.Description == "" {
		return &domain.ValidationError{Message: "Description is required"}
	}
	if d.Kind == KindSubItem && d.SectionID == "" {
		return &domain.ValidationError{Message: "section_id is required"}
	}
	return nil
}
