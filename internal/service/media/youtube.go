package media

import (
	"net/url"
	"regexp"
	"strings"

	"portfolio/internal/domain"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// path prefixes that carry the id as the next segment
var videoPathPrefixes = map[string]bool{
	"embed":  true,
	"shorts": true,
	"v":      true,
	"live":   true,
}

// ExtractVideoID returns the 11-character video id from a watch, short-link,
// embed or shorts URL. A bare id is accepted as-is.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if videoIDPattern.MatchString(raw) {
		return raw, nil
	}

	invalid := &domain.InvalidURLError{URL: raw}
	if raw == "" {
		return "", invalid
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", invalid
	}

	host := strings.ToLower(u.Hostname())
	for _, prefix := range []string{"www.", "m.", "music."} {
		host = strings.TrimPrefix(host, prefix)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch host {
	case "youtu.be":
		id = segments[0]
	case "youtube.com", "youtube-nocookie.com":
		id = u.Query().Get("v")
		if id == "" && len(segments) >= 2 && videoPathPrefixes[segments[0]] {
			id = segments[1]
		}
	}

	if !videoIDPattern.MatchString(id) {
		return "", invalid
	}
	return id, nil
}

// EmbedURL returns the player address for a video id
func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + url.PathEscape(id)
}

// ThumbnailURL returns the default still for a video id
func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + url.PathEscape(id) + "/hqdefault.jpg"
}
