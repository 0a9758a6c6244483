// Package web renders the server-side HTML pages.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"portfolio/internal/service/media"
)

//go:embed templates/*.html
var embedded embed.FS

// Page names.
const (
	PageIndex  = "index"
	PageDetail = "detail"
	PageLogin  = "login"
	PageAdmin  = "admin"
)

var pages = []string{PageIndex, PageDetail, PageLogin, PageAdmin}

const layoutFile = "layout.html"

// reloadDebounce batches editor save bursts into one reload
const reloadDebounce = 300 * time.Millisecond

// Base is shared by every page
type Base struct {
	SignedIn bool
	Year     int
}

// Renderer holds one parsed template set per page
type Renderer struct {
	mu     sync.RWMutex
	sets   map[string]*template.Template
	funcs  template.FuncMap
	logger *slog.Logger
}

// NewRenderer parses the templates from dir, or the embedded copies when
// dir is empty.
func NewRenderer(dir string, funcs template.FuncMap, logger *slog.Logger) (*Renderer, error) {
	merged := template.FuncMap{
		"embedURL": media.EmbedURL,
	}
	for name, fn := range funcs {
		merged[name] = fn
	}

	r := &Renderer{funcs: merged, logger: logger}
	if err := r.Load(source(dir)); err != nil {
		return nil, err
	}
	return r, nil
}

func source(dir string) fs.FS {
	if dir == "" {
		sub, _ := fs.Sub(embedded, "templates")
		return sub
	}
	return os.DirFS(dir)
}

// Load parses every page from fsys and swaps the set in only if all succeed
func (r *Renderer) Load(fsys fs.FS) error {
	sets := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New(page).Funcs(r.funcs).ParseFS(fsys, layoutFile, page+".html")
		if err != nil {
			return fmt.Errorf("parse %s: %w", page, err)
		}
		sets[page] = t
	}

	r.mu.Lock()
	r.sets = sets
	r.mu.Unlock()
	return nil
}

// Render executes page into w. Output is buffered so a template error
// never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data interface{}) error {
	r.mu.RLock()
	t, ok := r.sets[page]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Watch reloads the templates in dir whenever a file changes, until ctx is
// done. A failed reload keeps the previous set.
func (r *Renderer) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				r.logger.Debug("template change", "file", event.Name, "op", event.Op.String())
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					if err := r.Load(os.DirFS(dir)); err != nil {
						r.logger.Error("template reload failed", "error", err)
						return
					}
					r.logger.Info("templates reloaded", "dir", dir)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.logger.Warn("template watcher error", "error", err)
			}
		}
	}()

	return nil
}
