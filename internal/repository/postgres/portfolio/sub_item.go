package portfolio

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	models "portfolio/internal/domain/models/portfolio"
	portfolioRepo "portfolio/internal/domain/repositories/portfolio"
	"portfolio/internal/repository/postgres"
)

// PostgresSubItemRepository implements the SubItemRepository interface.
// media_items and content are JSONB; media_urls and media_types are text[].
type PostgresSubItemRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewSubItemRepository creates a new sub-item repository
func NewSubItemRepository(config *postgres.RepositoryConfig) portfolioRepo.SubItemRepository {
	return &PostgresSubItemRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const subItemColumns = `id, section_id, title, description, order_index, type,
	COALESCE(media_items, '[]'::jsonb), COALESCE(media_urls, '{}'), COALESCE(media_types, '{}'),
	COALESCE(content, '[]'::jsonb), created_at, updated_at`

// Create inserts a sub-item
func (r *PostgresSubItemRepository) Create(ctx context.Context, item *models.SubItem) error {
	mediaJSON, contentJSON, err := encodeSubItemJSON(item)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (section_id, title, description, order_index, type, media_items, media_urls, media_types, content)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9::jsonb)
		RETURNING id, created_at, updated_at
	`, r.tables.SubItems)

	executor := postgres.GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		item.SectionID,
		item.Title,
		item.Description,
		item.OrderIndex,
		item.Type,
		mediaJSON,
		nonNil(item.MediaURLs),
		nonNil(item.MediaTypes),
		contentJSON,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return postgres.NotFound("section", item.SectionID)
		}
		return postgres.StoreError("create sub-item", err)
	}

	return nil
}

// GetByID retrieves a sub-item by ID
func (r *PostgresSubItemRepository) GetByID(ctx context.Context, id string) (*models.SubItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, subItemColumns, r.tables.SubItems)

	executor := postgres.GetExecutor(ctx, r.pool)
	item, err := scanSubItem(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, postgres.NotFound("sub-item", id)
		}
		return nil, postgres.StoreError("get sub-item", err)
	}

	return item, nil
}

// ListBySection retrieves a section's sub-items ordered by order_index
func (r *PostgresSubItemRepository) ListBySection(ctx context.Context, sectionID string) ([]models.SubItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE section_id = $1
		ORDER BY order_index ASC, created_at ASC, id ASC
	`, subItemColumns, r.tables.SubItems)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, sectionID)
	if err != nil {
		return nil, postgres.StoreError("list sub-items", err)
	}
	defer rows.Close()

	items := []models.SubItem{}
	for rows.Next() {
		item, err := scanSubItem(rows)
		if err != nil {
			return nil, postgres.StoreError("scan sub-item", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("iterate sub-items", err)
	}

	return items, nil
}

// CountBySection returns the number of sub-items in a section
func (r *PostgresSubItemRepository) CountBySection(ctx context.Context, sectionID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE section_id = $1`, r.tables.SubItems)

	var n int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, sectionID).Scan(&n); err != nil {
		return 0, postgres.StoreError("count sub-items", err)
	}
	return n, nil
}

// ListStoragePaths returns the distinct storage paths referenced by media items
func (r *PostgresSubItemRepository) ListStoragePaths(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT elem->>'storagePath'
		FROM %s, jsonb_array_elements(COALESCE(media_items, '[]'::jsonb)) AS elem
		WHERE COALESCE(elem->>'storagePath', '') <> ''
		ORDER BY 1
	`, r.tables.SubItems)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, postgres.StoreError("list storage paths", err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, postgres.StoreError("scan storage path", err)
		}
		paths = append(paths, p)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("iterate storage paths", err)
	}

	return paths, nil
}

// Update replaces a sub-item's editable fields
func (r *PostgresSubItemRepository) Update(ctx context.Context, item *models.SubItem) error {
	mediaJSON, contentJSON, err := encodeSubItemJSON(item)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, order_index = $3, type = $4,
			media_items = $5::jsonb, media_urls = $6, media_types = $7, content = $8::jsonb,
			updated_at = NOW()
		WHERE id = $9
		RETURNING section_id, created_at, updated_at
	`, r.tables.SubItems)

	executor := postgres.GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		item.Title,
		item.Description,
		item.OrderIndex,
		item.Type,
		mediaJSON,
		nonNil(item.MediaURLs),
		nonNil(item.MediaTypes),
		contentJSON,
		item.ID,
	).Scan(&item.SectionID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return postgres.NotFound("sub-item", item.ID)
		}
		return postgres.StoreError("update sub-item", err)
	}

	return nil
}

// Delete removes a sub-item
func (r *PostgresSubItemRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.SubItems)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.StoreError("delete sub-item", err)
	}

	if result.RowsAffected() == 0 {
		return postgres.NotFound("sub-item", id)
	}

	return nil
}

func scanSubItem(row rowScanner) (*models.SubItem, error) {
	var (
		item        models.SubItem
		mediaJSON   []byte
		contentJSON []byte
	)
	err := row.Scan(
		&item.ID,
		&item.SectionID,
		&item.Title,
		&item.Description,
		&item.OrderIndex,
		&item.Type,
		&mediaJSON,
		&item.MediaURLs,
		&item.MediaTypes,
		&contentJSON,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(mediaJSON, &item.MediaItems); err != nil {
		return nil, fmt.Errorf("decode media_items: %w", err)
	}
	if err := json.Unmarshal(contentJSON, &item.Content); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if item.MediaItems == nil {
		item.MediaItems = []models.MediaItem{}
	}

	return &item, nil
}

func encodeSubItemJSON(item *models.SubItem) (media, content string, err error) {
	mediaItems := item.MediaItems
	if mediaItems == nil {
		mediaItems = []models.MediaItem{}
	}
	m, err := json.Marshal(mediaItems)
	if err != nil {
		return "", "", fmt.Errorf("encode media_items: %w", err)
	}

	contentItems := item.Content
	if contentItems == nil {
		contentItems = []models.PortfolioItem{}
	}
	c, err := json.Marshal(contentItems)
	if err != nil {
		return "", "", fmt.Errorf("encode content: %w", err)
	}

	return string(m), string(c), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
