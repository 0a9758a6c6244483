package portfolio

import "time"

// Section is a top-level portfolio category (community, events, art, ...).
type Section struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"` // markdown
	Icon        string    `json:"icon" db:"icon"`
	Color       string    `json:"color" db:"color"`
	OrderIndex  int       `json:"order_index" db:"order_index"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// SectionWithItems is the public read shape: a section and its ordered sub-items.
type SectionWithItems struct {
	Section
	SubItems []SubItem `json:"sub_items"`
}
