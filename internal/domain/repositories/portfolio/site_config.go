package portfolio

import "context"

// SiteConfigRepository reads the key/value config table.
type SiteConfigRepository interface {
	// Get returns the value for key, or ErrNotFound if the key is absent
	Get(ctx context.Context, key string) (string, error)

	// Set upserts a value
	Set(ctx context.Context, key, value string) error
}
