// Package media manages the ordered media list of one sub-item: image uploads
// to storage, video links and removals.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/portfolio"
)

// User-facing messages.
const (
	msgInvalidType   = "Invalid file type. Only JPEG, PNG, GIF, and WebP images are allowed."
	msgTooLarge      = "File size exceeds 5MB limit."
	msgRemoveFailed  = "Failed to remove item. Please try again."
	youtubeItemTitle = "YouTube Video"
)

// ErrBusy is returned when a batch is started while another is uploading.
var ErrBusy = errors.New("an upload is already in progress")

// Storage stores and removes binary objects.
type Storage interface {
	// Upload stores body at path and returns its public URL.
	Upload(ctx context.Context, path, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, paths ...string) error
}

// File is one upload candidate
type File struct {
	Name string
	Size int64 // as reported by the client; the content is measured anyway
	Open func() (io.ReadCloser, error)
}

// WidgetConfig tunes a Widget. Zero values take the defaults.
type WidgetConfig struct {
	MaxFiles int
	MaxSize  int64
	Folder   string

	// OnChange receives the full list after every change
	OnChange func(items []models.MediaItem)

	// OnProgress receives the completed fraction of a batch
	OnProgress func(fraction float64)
}

// Widget holds the media list being edited for one sub-item
type Widget struct {
	mu      sync.Mutex
	storage Storage
	cfg     WidgetConfig
	logger  *slog.Logger

	items     []models.MediaItem
	uploading bool
	done      int
	total     int
	warning   string

	now   func() time.Time
	newID func() string
}

// NewWidget starts a widget from the sub-item's current items
func NewWidget(storage Storage, items []models.MediaItem, cfg WidgetConfig, logger *slog.Logger) *Widget {
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = config.MaxMediaFiles
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = config.MaxUploadSize
	}
	if cfg.Folder == "" {
		cfg.Folder = config.DefaultMediaFolder
	}
	return &Widget{
		storage: storage,
		cfg:     cfg,
		logger:  logger,
		items:   append([]models.MediaItem{}, items...),
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
}

// Items returns a copy of the current list
func (w *Widget) Items() []models.MediaItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.MediaItem{}, w.items...)
}

// Progress returns the completed fraction of the running batch, 0 when idle
func (w *Widget) Progress() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.uploading || w.total == 0 {
		return 0
	}
	return float64(w.done) / float64(w.total)
}

// Uploading reports whether a batch is in flight
func (w *Widget) Uploading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.uploading
}

// Warning returns the last non-blocking warning, if any
func (w *Widget) Warning() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.warning
}

// AddFiles uploads files one after another, appending an image item for
// each success. The first failure stops the batch; files already uploaded
// stay in the list.
func (w *Widget) AddFiles(ctx context.Context, files []File) error {
	if len(files) == 0 {
		return nil
	}

	w.mu.Lock()
	if w.uploading {
		w.mu.Unlock()
		return ErrBusy
	}
	if len(w.items)+len(files) > w.cfg.MaxFiles {
		w.mu.Unlock()
		return &domain.LimitExceededError{Max: w.cfg.MaxFiles}
	}
	w.uploading = true
	w.done, w.total = 0, len(files)
	w.warning = ""
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.uploading = false
		w.done, w.total = 0, 0
		w.mu.Unlock()
	}()

	for _, f := range files {
		item, err := w.upload(ctx, f)
		if err != nil {
			w.logger.Warn("media upload failed", "file", f.Name, "error", err)
			return err
		}

		w.mu.Lock()
		w.items = append(w.items, item)
		w.done++
		fraction := float64(w.done) / float64(w.total)
		w.mu.Unlock()

		w.logger.Info("media uploaded", "file", f.Name, "path", item.StoragePath)
		w.notify()
		if w.cfg.OnProgress != nil {
			w.cfg.OnProgress(fraction)
		}
	}
	return nil
}

func (w *Widget) upload(ctx context.Context, f File) (models.MediaItem, error) {
	fail := func(reason string, err error) (models.MediaItem, error) {
		return models.MediaItem{}, &domain.UploadError{File: f.Name, Reason: reason, Err: err}
	}

	if f.Size > w.cfg.MaxSize {
		return fail(domain.UploadTooLarge, errors.New(msgTooLarge))
	}

	rc, err := f.Open()
	if err != nil {
		return fail(domain.UploadStorage, fmt.Errorf("Failed to upload file: %w", err))
	}
	data, err := io.ReadAll(io.LimitReader(rc, w.cfg.MaxSize+1))
	rc.Close()
	if err != nil {
		return fail(domain.UploadStorage, fmt.Errorf("Failed to upload file: %w", err))
	}
	if int64(len(data)) > w.cfg.MaxSize {
		return fail(domain.UploadTooLarge, errors.New(msgTooLarge))
	}

	mtype := mimetype.Detect(data)
	contentType := allowedType(mtype)
	if contentType == "" {
		return fail(domain.UploadInvalidType, errors.New(msgInvalidType))
	}

	storagePath := w.storagePath(f.Name, mtype.Extension())
	url, err := w.storage.Upload(ctx, storagePath, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fail(domain.UploadStorage, fmt.Errorf("Failed to upload file: %w", err))
	}

	return models.MediaItem{
		URL:         url,
		Type:        models.MediaTypeImage,
		Title:       f.Name,
		StoragePath: storagePath,
	}, nil
}

// storagePath builds folder/<unix-millis>-<uuid><ext>
func (w *Widget) storagePath(name, detectedExt string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		ext = detectedExt
	}
	return fmt.Sprintf("%s/%d-%s%s", w.cfg.Folder, w.now().UnixMilli(), w.newID(), ext)
}

func allowedType(m *mimetype.MIME) string {
	for _, allowed := range config.AllowedImageTypes {
		if m.Is(allowed) {
			return allowed
		}
	}
	return ""
}

// AddYoutubeLink appends a video item for the id extracted from raw
func (w *Widget) AddYoutubeLink(raw string) error {
	id, err := ExtractVideoID(raw)
	if err != nil {
		return err
	}

	// links are not counted against MaxFiles
	w.mu.Lock()
	w.items = append(w.items, models.MediaItem{
		URL:   id,
		Type:  models.MediaTypeYouTube,
		Title: youtubeItemTitle,
	})
	w.mu.Unlock()

	w.notify()
	return nil
}

// RemoveItem drops the item at index, deleting its stored object first.
// A failed storage delete only sets Warning.
func (w *Widget) RemoveItem(ctx context.Context, index int) error {
	w.mu.Lock()
	if index < 0 || index >= len(w.items) {
		w.mu.Unlock()
		return &domain.ValidationError{Message: fmt.Sprintf("no media item at index %d", index)}
	}
	item := w.items[index]
	w.mu.Unlock()

	var warning string
	if item.Type == models.MediaTypeImage && item.StoragePath != "" {
		if err := w.storage.Delete(ctx, item.StoragePath); err != nil {
			w.logger.Warn("media delete failed", "path", item.StoragePath, "error", err)
			warning = msgRemoveFailed
		}
	}

	w.mu.Lock()
	// the list may have changed while storage was called
	if i := slices.Index(w.items, item); i >= 0 {
		w.items = slices.Delete(w.items, i, i+1)
	}
	w.warning = warning
	w.mu.Unlock()

	w.notify()
	return nil
}

func (w *Widget) notify() {
	if w.cfg.OnChange != nil {
		w.cfg.OnChange(w.Items())
	}
}
