package portfolio

// Media item types.
const (
	MediaTypeImage   = "image"
	MediaTypeYouTube = "youtube"
)

// MediaItem references one image or video attached to a sub-item.
// For youtube items URL holds the 11-character video id.
type MediaItem struct {
	URL         string `json:"url" yaml:"url"`
	Type        string `json:"type" yaml:"type"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	StoragePath string `json:"storagePath,omitempty" yaml:"storagePath,omitempty"`
}

// IsValidMediaType reports whether t is a known media item type.
func IsValidMediaType(t string) bool {
	return t == MediaTypeImage || t == MediaTypeYouTube
}

// DeriveMedia builds the parallel url/type arrays for items.
// Both slices are non-nil so they serialize as [] rather than null.
func DeriveMedia(items []MediaItem) (urls, types []string) {
	urls = make([]string, len(items))
	types = make([]string, len(items))
	for i, item := range items {
		urls[i] = item.URL
		types[i] = item.Type
	}
	return urls, types
}
