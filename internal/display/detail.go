package display

import (
	"html/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	models "portfolio/internal/domain/models/portfolio"
	"portfolio/internal/service/media"
)

// Video is one embedded player
type Video struct {
	ID       string
	Title    string
	EmbedURL string
}

// Image is one gallery tile
type Image struct {
	Index int
	URL   string
	Title string
}

// Detail is the sub-item page
type Detail struct {
	Item  models.SubItem
	Label string
	Body  template.HTML

	Videos []Video
	Images []Image
	// Legacy holds the older content list shown when there is no media
	Legacy []models.PortfolioItem

	// Viewing is the enlarged image, nil when the grid is shown
	Viewing  *Image
	Previous int
	Next     int
}

// BuildDetail lays out item. view is the enlarged image index or -1.
func BuildDetail(item models.SubItem, view int, md Markdown) Detail {
	d := Detail{
		Item:  item,
		Label: cases.Title(language.English).String(item.EffectiveType()),
		Body:  md.MustRender(item.Description),
	}

	if item.EffectiveType() == models.SubItemTypeYouTube {
		for _, m := range item.MediaItems {
			if m.Type != models.MediaTypeYouTube {
				continue
			}
			d.Videos = append(d.Videos, Video{
				ID:       m.URL,
				Title:    m.Title,
				EmbedURL: media.EmbedURL(m.URL),
			})
		}
	} else {
		for _, m := range item.MediaItems {
			if m.Type != models.MediaTypeImage {
				continue
			}
			d.Images = append(d.Images, Image{Index: len(d.Images), URL: m.URL, Title: m.Title})
		}
	}

	if len(item.MediaItems) == 0 {
		d.Legacy = item.Content
	}

	if view >= 0 && view < len(d.Images) {
		img := d.Images[view]
		d.Viewing = &img
		d.Previous = PreviousIndex(view, len(d.Images))
		d.Next = NextIndex(view, len(d.Images))
	}
	return d
}

// NextIndex moves forward through n images, wrapping to the first
func NextIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

// PreviousIndex moves back through n images, wrapping to the last
func PreviousIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i - 1 + n) % n
}
