package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/portfolio"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	gifHeader = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00")
)

// fakeStorage records uploads and deletes
type fakeStorage struct {
	mu         sync.Mutex
	uploaded   []string
	types      []string
	deleted    []string
	failOn     map[int]bool // upload call index
	failDelete bool
	calls      int
}

func (s *fakeStorage) Upload(ctx context.Context, path, contentType string, body io.Reader, size int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.calls
	s.calls++
	if s.failOn[idx] {
		return "", errors.New("bucket unavailable")
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	s.uploaded = append(s.uploaded, path)
	s.types = append(s.types, contentType)
	return "https://cdn.test/" + path, nil
}

func (s *fakeStorage) Delete(ctx context.Context, paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDelete {
		return errors.New("delete failed")
	}
	s.deleted = append(s.deleted, paths...)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func memFile(name string, data []byte) File {
	return File{
		Name: name,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

func newTestWidget(store Storage, items []models.MediaItem, cfg WidgetConfig) *Widget {
	w := NewWidget(store, items, cfg, testLogger())
	w.now = func() time.Time { return time.UnixMilli(1700000000000) }
	n := 0
	w.newID = func() string {
		n++
		return "id" + strconv.Itoa(n)
	}
	return w
}

func TestAddFilesUploadsImages(t *testing.T) {
	store := &fakeStorage{}
	var changes [][]models.MediaItem
	var progress []float64
	w := newTestWidget(store, nil, WidgetConfig{
		Folder:     "portfolio",
		OnChange:   func(items []models.MediaItem) { changes = append(changes, items) },
		OnProgress: func(f float64) { progress = append(progress, f) },
	})

	err := w.AddFiles(context.Background(), []File{
		memFile("Photo.PNG", pngHeader),
		memFile("anim", gifHeader),
	})
	if err != nil {
		t.Fatalf("AddFiles: %v", err)
	}

	items := w.Items()
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].StoragePath != "portfolio/1700000000000-id1.png" {
		t.Errorf("first path = %q", items[0].StoragePath)
	}
	if items[1].StoragePath != "portfolio/1700000000000-id2.gif" {
		t.Errorf("second path = %q, want detected extension", items[1].StoragePath)
	}
	if items[0].Type != models.MediaTypeImage || items[0].Title != "Photo.PNG" {
		t.Errorf("first item = %+v", items[0])
	}
	if items[0].URL != "https://cdn.test/portfolio/1700000000000-id1.png" {
		t.Errorf("url = %q", items[0].URL)
	}
	if store.types[0] != "image/png" || store.types[1] != "image/gif" {
		t.Errorf("content types = %v", store.types)
	}
	if len(changes) != 2 || len(changes[1]) != 2 {
		t.Errorf("OnChange calls = %d", len(changes))
	}
	if len(progress) != 2 || progress[1] != 1 {
		t.Errorf("progress = %v", progress)
	}
	if w.Uploading() || w.Progress() != 0 {
		t.Error("widget still reports an upload in progress")
	}
}

func TestAddFilesRejectsOverLimitBeforeUploading(t *testing.T) {
	store := &fakeStorage{}
	existing := make([]models.MediaItem, 9)
	for i := range existing {
		existing[i] = models.MediaItem{URL: "u", Type: models.MediaTypeImage}
	}
	w := newTestWidget(store, existing, WidgetConfig{})

	err := w.AddFiles(context.Background(), []File{memFile("a.png", pngHeader), memFile("b.png", pngHeader)})

	var limit *domain.LimitExceededError
	if !errors.As(err, &limit) {
		t.Fatalf("error = %v, want LimitExceededError", err)
	}
	if err.Error() != "Maximum 10 files allowed" {
		t.Errorf("message = %q", err.Error())
	}
	if store.calls != 0 {
		t.Errorf("storage called %d times", store.calls)
	}
	if len(w.Items()) != 9 {
		t.Errorf("items changed to %d", len(w.Items()))
	}
}

func TestAddFilesRejectsWrongType(t *testing.T) {
	store := &fakeStorage{}
	w := newTestWidget(store, nil, WidgetConfig{})

	err := w.AddFiles(context.Background(), []File{memFile("notes.png", []byte("just some text"))})

	var upload *domain.UploadError
	if !errors.As(err, &upload) {
		t.Fatalf("error = %v, want UploadError", err)
	}
	if upload.Reason != domain.UploadInvalidType {
		t.Errorf("reason = %q", upload.Reason)
	}
	if !strings.Contains(err.Error(), msgInvalidType) {
		t.Errorf("message = %q", err.Error())
	}
	if store.calls != 0 {
		t.Error("rejected file was uploaded")
	}
}

func TestAddFilesRejectsTooLarge(t *testing.T) {
	tests := []struct {
		name string
		file File
	}{
		{name: "declared size", file: File{Name: "big.png", Size: 100, Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(pngHeader)), nil
		}}},
		{name: "measured size", file: File{Name: "big.png", Size: 1, Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(append(append([]byte{}, pngHeader...), make([]byte, 64)...))), nil
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStorage{}
			w := newTestWidget(store, nil, WidgetConfig{MaxSize: 40})

			err := w.AddFiles(context.Background(), []File{tt.file})

			var upload *domain.UploadError
			if !errors.As(err, &upload) || upload.Reason != domain.UploadTooLarge {
				t.Fatalf("error = %v, want too_large UploadError", err)
			}
			if store.calls != 0 {
				t.Error("oversized file was uploaded")
			}
		})
	}
}

func TestAddFilesStopsAtFirstFailure(t *testing.T) {
	store := &fakeStorage{failOn: map[int]bool{1: true}}
	w := newTestWidget(store, nil, WidgetConfig{})

	err := w.AddFiles(context.Background(), []File{
		memFile("a.png", pngHeader),
		memFile("b.png", pngHeader),
		memFile("c.png", pngHeader),
	})

	var upload *domain.UploadError
	if !errors.As(err, &upload) || upload.Reason != domain.UploadStorage {
		t.Fatalf("error = %v, want storage UploadError", err)
	}
	if upload.File != "b.png" {
		t.Errorf("failed file = %q", upload.File)
	}
	if got := w.Items(); len(got) != 1 || got[0].Title != "a.png" {
		t.Errorf("items = %+v, want only a.png", got)
	}
	if store.calls != 2 {
		t.Errorf("upload calls = %d, want 2", store.calls)
	}
}

func TestAddYoutubeLink(t *testing.T) {
	w := newTestWidget(&fakeStorage{}, nil, WidgetConfig{})

	if err := w.AddYoutubeLink("https://youtu.be/dQw4w9WgXcQ"); err != nil {
		t.Fatalf("AddYoutubeLink: %v", err)
	}
	items := w.Items()
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	want := models.MediaItem{URL: "dQw4w9WgXcQ", Type: models.MediaTypeYouTube, Title: "YouTube Video"}
	if items[0] != want {
		t.Errorf("item = %+v, want %+v", items[0], want)
	}

	if err := w.AddYoutubeLink("https://example.com/video"); err == nil {
		t.Error("expected an error for a non-YouTube link")
	}
	if len(w.Items()) != 1 {
		t.Error("invalid link changed the list")
	}
}

func TestAddYoutubeLinkIgnoresFileCap(t *testing.T) {
	full := []models.MediaItem{{URL: "https://cdn.test/a.png", Type: models.MediaTypeImage, StoragePath: "portfolio/a.png"}}
	w := newTestWidget(&fakeStorage{}, full, WidgetConfig{MaxFiles: 1})

	if err := w.AddYoutubeLink("dQw4w9WgXcQ"); err != nil {
		t.Fatalf("AddYoutubeLink at the file cap: %v", err)
	}
	if got := w.Items(); len(got) != 2 || got[1].Type != models.MediaTypeYouTube {
		t.Errorf("items = %+v", got)
	}
}

func TestRemoveItem(t *testing.T) {
	items := []models.MediaItem{
		{URL: "https://cdn.test/portfolio/a.png", Type: models.MediaTypeImage, StoragePath: "portfolio/a.png"},
		{URL: "dQw4w9WgXcQ", Type: models.MediaTypeYouTube},
		{URL: "https://cdn.test/portfolio/c.png", Type: models.MediaTypeImage, StoragePath: "portfolio/c.png"},
	}

	t.Run("deletes stored image", func(t *testing.T) {
		store := &fakeStorage{}
		w := newTestWidget(store, items, WidgetConfig{})

		if err := w.RemoveItem(context.Background(), 0); err != nil {
			t.Fatalf("RemoveItem: %v", err)
		}
		if len(store.deleted) != 1 || store.deleted[0] != "portfolio/a.png" {
			t.Errorf("deleted = %v", store.deleted)
		}
		got := w.Items()
		if len(got) != 2 || got[0].Type != models.MediaTypeYouTube {
			t.Errorf("items = %+v", got)
		}
	})

	t.Run("video removes without storage", func(t *testing.T) {
		store := &fakeStorage{}
		w := newTestWidget(store, items, WidgetConfig{})

		if err := w.RemoveItem(context.Background(), 1); err != nil {
			t.Fatalf("RemoveItem: %v", err)
		}
		if len(store.deleted) != 0 {
			t.Errorf("storage delete called for a video")
		}
		if len(w.Items()) != 2 {
			t.Errorf("items = %d", len(w.Items()))
		}
	})

	t.Run("storage failure warns and still removes", func(t *testing.T) {
		store := &fakeStorage{failDelete: true}
		w := newTestWidget(store, items, WidgetConfig{})

		if err := w.RemoveItem(context.Background(), 2); err != nil {
			t.Fatalf("RemoveItem: %v", err)
		}
		if w.Warning() != msgRemoveFailed {
			t.Errorf("warning = %q", w.Warning())
		}
		if len(w.Items()) != 2 {
			t.Errorf("items = %d, want 2", len(w.Items()))
		}
	})

	t.Run("out of range", func(t *testing.T) {
		w := newTestWidget(&fakeStorage{}, items, WidgetConfig{})
		err := w.RemoveItem(context.Background(), 3)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want validation error", err)
		}
	})
}

func TestNewWidgetCopiesItems(t *testing.T) {
	items := []models.MediaItem{{URL: "dQw4w9WgXcQ", Type: models.MediaTypeYouTube}}
	w := newTestWidget(&fakeStorage{}, items, WidgetConfig{})
	items[0].URL = "changed"
	if w.Items()[0].URL != "dQw4w9WgXcQ" {
		t.Error("widget shares the caller's slice")
	}
}
