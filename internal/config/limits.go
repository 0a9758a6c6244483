package config

const (
	// MaxTitleLength is the maximum length for section and sub-item titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxTitleLength = 255

	// MaxIconLength bounds the icon field (an emoji or short glyph name).
	MaxIconLength = 32

	// MaxColorLength bounds the color field (hex value or class token).
	MaxColorLength = 64

	// MaxMediaFiles is the default cap on media items per sub-item.
	MaxMediaFiles = 10

	// MaxUploadSize is the largest image accepted by the media widget (5MB).
	MaxUploadSize = 5 << 20

	// MaxContactMessageLength bounds contact form bodies.
	MaxContactMessageLength = 5000

	// DefaultStorageBucket is the Supabase Storage bucket holding media.
	DefaultStorageBucket = "portfolio_media"

	// DefaultMediaFolder is the folder inside the bucket for uploads.
	DefaultMediaFolder = "portfolio"
)

// AllowedImageTypes lists the MIME types the media widget uploads.
var AllowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}
