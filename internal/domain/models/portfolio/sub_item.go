package portfolio

import "time"

// Sub-item display types.
const (
	SubItemTypeGallery = "gallery"
	SubItemTypeYouTube = "youtube"
)

// SubItem is an entry within a section, displayed as a gallery or a video list.
//
// MediaItems is authoritative. MediaURLs and MediaTypes are parallel arrays
// kept for older readers and must be regenerated with SyncMedia on every write.
type SubItem struct {
	ID          string          `json:"id" db:"id"`
	SectionID   string          `json:"section_id" db:"section_id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	OrderIndex  int             `json:"order_index" db:"order_index"`
	Type        string          `json:"type" db:"type"`
	MediaItems  []MediaItem     `json:"media_items" db:"media_items"`
	MediaURLs   []string        `json:"media_urls" db:"media_urls"`
	MediaTypes  []string        `json:"media_types" db:"media_types"`
	Content     []PortfolioItem `json:"content,omitempty" db:"content"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// SyncMedia regenerates the derived media arrays from MediaItems.
func (s *SubItem) SyncMedia() {
	s.MediaURLs, s.MediaTypes = DeriveMedia(s.MediaItems)
}

// EffectiveType returns Type, defaulting to gallery.
func (s *SubItem) EffectiveType() string {
	if s.Type == "" {
		return SubItemTypeGallery
	}
	return s.Type
}

// PortfolioItem is the legacy content entry, shown only when a sub-item has
// no media items.
type PortfolioItem struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
	VideoID     string `json:"videoId,omitempty" yaml:"videoId,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}
