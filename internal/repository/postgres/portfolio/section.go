package portfolio

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	models "portfolio/internal/domain/models/portfolio"
	portfolioRepo "portfolio/internal/domain/repositories/portfolio"
	"portfolio/internal/repository/postgres"
)

// PostgresSectionRepository implements the SectionRepository interface
type PostgresSectionRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(config *postgres.RepositoryConfig) portfolioRepo.SectionRepository {
	return &PostgresSectionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const sectionColumns = `id, title, description, icon, color, order_index, created_at, updated_at`

// Create inserts a section
func (r *PostgresSectionRepository) Create(ctx context.Context, section *models.Section) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, description, icon, color, order_index)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Sections)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		section.Title,
		section.Description,
		section.Icon,
		section.Color,
		section.OrderIndex,
	).Scan(&section.ID, &section.CreatedAt, &section.UpdatedAt)
	if err != nil {
		return postgres.StoreError("create section", err)
	}

	return nil
}

// GetByID retrieves a section by ID
func (r *PostgresSectionRepository) GetByID(ctx context.Context, id string) (*models.Section, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, sectionColumns, r.tables.Sections)

	executor := postgres.GetExecutor(ctx, r.pool)
	section, err := scanSection(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, postgres.NotFound("section", id)
		}
		return nil, postgres.StoreError("get section", err)
	}

	return section, nil
}

// List retrieves all sections ordered by order_index
func (r *PostgresSectionRepository) List(ctx context.Context) ([]models.Section, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY order_index ASC, created_at ASC, id ASC
	`, sectionColumns, r.tables.Sections)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, postgres.StoreError("list sections", err)
	}
	defer rows.Close()

	sections := []models.Section{}
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, postgres.StoreError("scan section", err)
		}
		sections = append(sections, *section)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("iterate sections", err)
	}

	return sections, nil
}

// Count returns the number of sections
func (r *PostgresSectionRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Sections)

	var n int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, postgres.StoreError("count sections", err)
	}
	return n, nil
}

// Update replaces a section's editable fields
func (r *PostgresSectionRepository) Update(ctx context.Context, section *models.Section) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, icon = $3, color = $4, order_index = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING created_at, updated_at
	`, r.tables.Sections)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		section.Title,
		section.Description,
		section.Icon,
		section.Color,
		section.OrderIndex,
		section.ID,
	).Scan(&section.CreatedAt, &section.UpdatedAt)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return postgres.NotFound("section", section.ID)
		}
		return postgres.StoreError("update section", err)
	}

	return nil
}

// Delete removes a section (sub-items cascade)
func (r *PostgresSectionRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Sections)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.StoreError("delete section", err)
	}

	if result.RowsAffected() == 0 {
		return postgres.NotFound("section", id)
	}

	return nil
}

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSection(row rowScanner) (*models.Section, error) {
	var s models.Section
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Description,
		&s.Icon,
		&s.Color,
		&s.OrderIndex,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
