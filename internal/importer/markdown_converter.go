package importer

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	models "portfolio/internal/domain/models/portfolio"
	"portfolio/internal/service/media"
)

// frontMatter is the optional header of an imported markdown file
type frontMatter struct {
	Title   string       `yaml:"title" toml:"title" json:"title"`
	Type    string       `yaml:"type" toml:"type" json:"type"`
	Images  []mediaEntry `yaml:"images" toml:"images" json:"images"`
	YouTube []string     `yaml:"youtube" toml:"youtube" json:"youtube"`
}

type mediaEntry struct {
	URL         string `yaml:"url" toml:"url" json:"url"`
	Title       string `yaml:"title" toml:"title" json:"title"`
	Description string `yaml:"description" toml:"description" json:"description"`
}

// markdownConverter reads front matter and keeps the body as the description
type markdownConverter struct{}

// NewMarkdownConverter creates the markdown converter
func NewMarkdownConverter() Converter {
	return &markdownConverter{}
}

func (c *markdownConverter) Convert(ctx context.Context, input []byte) (Document, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(input), &fm)
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse front matter: %w", err)
	}

	doc := Document{
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(string(body)),
		Type:        fm.Type,
	}

	for _, img := range fm.Images {
		if img.URL == "" {
			continue
		}
		doc.MediaItems = append(doc.MediaItems, models.MediaItem{
			URL:         img.URL,
			Type:        models.MediaTypeImage,
			Title:       img.Title,
			Description: img.Description,
		})
	}
	for _, link := range fm.YouTube {
		id, err := media.ExtractVideoID(link)
		if err != nil {
			return Document{}, fmt.Errorf("youtube %q: %w", link, err)
		}
		doc.MediaItems = append(doc.MediaItems, models.MediaItem{
			URL:   id,
			Type:  models.MediaTypeYouTube,
			Title: "YouTube Video",
		})
	}
	if doc.Type == "" && len(fm.YouTube) > 0 && len(fm.Images) == 0 {
		doc.Type = models.SubItemTypeYouTube
	}

	return doc, nil
}

func (c *markdownConverter) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

func (c *markdownConverter) Name() string {
	return "markdown"
}
