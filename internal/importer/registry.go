package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"portfolio/internal/domain"
)

// Registry routes files to converters by extension.
// Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]Converter // key: lowercase extension with dot
}

// NewRegistry creates a registry with the markdown, HTML and text converters
func NewRegistry() *Registry {
	r := &Registry{converters: make(map[string]Converter)}
	r.Register(NewMarkdownConverter())
	r.Register(NewHTMLConverter())
	r.Register(NewTextConverter())
	return r
}

// Register associates converter with each of its extensions
func (r *Registry) Register(converter Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range converter.SupportedExtensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.converters[ext] = converter
	}
}

// GetConverter returns the converter for fileExt, or nil
func (r *Registry) GetConverter(fileExt string) Converter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[strings.ToLower(fileExt)]
}

// Convert picks a converter by the file name's extension. A document without
// a title takes a leading "# " heading, or else a title built from the name.
func (r *Registry) Convert(ctx context.Context, filename string, content []byte) (Document, error) {
	ext := filepath.Ext(filename)
	converter := r.GetConverter(ext)
	if converter == nil {
		return Document{}, &domain.ValidationError{Message: fmt.Sprintf("unsupported file type: %s", ext)}
	}

	doc, err := converter.Convert(ctx, content)
	if err != nil {
		return Document{}, err
	}

	if doc.Title == "" {
		doc.Title, doc.Description = splitHeading(doc.Description)
	}
	if doc.Title == "" {
		doc.Title = titleFromName(filename)
	}
	return doc, nil
}

// SupportedExtensions returns every registered extension, sorted
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.converters))
	for ext := range r.converters {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// splitHeading removes a leading level-one heading from body and returns it
func splitHeading(body string) (title, rest string) {
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "# ") {
		return "", body
	}
	line, rest, _ := strings.Cut(body, "\n")
	return strings.TrimSpace(strings.TrimPrefix(line, "# ")), strings.TrimSpace(rest)
}

// titleFromName turns "toku-taisen_2023.md" into "Toku Taisen 2023"
func titleFromName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.English).String(strings.Join(strings.Fields(base), " "))
}
