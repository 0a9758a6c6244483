package portfolio

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/portfolio"
	portfolioRepo "portfolio/internal/domain/repositories/portfolio"
	"portfolio/internal/repository/postgres"
)

// PostgresContactCategoryRepository implements the ContactCategoryRepository interface
type PostgresContactCategoryRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewContactCategoryRepository creates a new contact category repository
func NewContactCategoryRepository(config *postgres.RepositoryConfig) portfolioRepo.ContactCategoryRepository {
	return &PostgresContactCategoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a category; names are unique
func (r *PostgresContactCategoryRepository) Create(ctx context.Context, category *models.ContactCategory) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, notification_email)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, r.tables.ContactCategories)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, category.Name, category.NotificationEmail).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.conflict(ctx, category.Name)
		}
		return postgres.StoreError("create contact category", err)
	}

	return nil
}

// GetByName finds a category by exact name
func (r *PostgresContactCategoryRepository) GetByName(ctx context.Context, name string) (*models.ContactCategory, error) {
	query := fmt.Sprintf(`
		SELECT id, name, notification_email, created_at
		FROM %s
		WHERE name = $1
	`, r.tables.ContactCategories)

	var c models.ContactCategory
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.NotificationEmail, &c.CreatedAt)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, postgres.NotFound("contact category", name)
		}
		return nil, postgres.StoreError("get contact category", err)
	}

	return &c, nil
}

// List retrieves all categories, newest first
func (r *PostgresContactCategoryRepository) List(ctx context.Context) ([]models.ContactCategory, error) {
	query := fmt.Sprintf(`
		SELECT id, name, notification_email, created_at
		FROM %s
		ORDER BY created_at DESC
	`, r.tables.ContactCategories)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, postgres.StoreError("list contact categories", err)
	}
	defer rows.Close()

	categories := []models.ContactCategory{}
	for rows.Next() {
		var c models.ContactCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.NotificationEmail, &c.CreatedAt); err != nil {
			return nil, postgres.StoreError("scan contact category", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("iterate contact categories", err)
	}

	return categories, nil
}

// Update replaces a category's name and notification address
func (r *PostgresContactCategoryRepository) Update(ctx context.Context, category *models.ContactCategory) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, notification_email = $2
		WHERE id = $3
		RETURNING created_at
	`, r.tables.ContactCategories)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, category.Name, category.NotificationEmail, category.ID).
		Scan(&category.CreatedAt)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return postgres.NotFound("contact category", category.ID)
		}
		if postgres.IsPgDuplicateError(err) {
			return r.conflict(ctx, category.Name)
		}
		return postgres.StoreError("update contact category", err)
	}

	return nil
}

// Delete removes a category
func (r *PostgresContactCategoryRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.ContactCategories)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.StoreError("delete contact category", err)
	}
	if result.RowsAffected() == 0 {
		return postgres.NotFound("contact category", id)
	}
	return nil
}

// conflict builds a ConflictError pointing at the category that already has name
func (r *PostgresContactCategoryRepository) conflict(ctx context.Context, name string) error {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("contact category '%s' already exists: %w", name, domain.ErrConflict)
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("contact category '%s' already exists", name),
		ResourceType: "contact_category",
		ResourceID:   existing.ID,
	}
}

// PostgresContactMessageRepository implements the ContactMessageRepository interface
type PostgresContactMessageRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewContactMessageRepository creates a new contact message repository
func NewContactMessageRepository(config *postgres.RepositoryConfig) portfolioRepo.ContactMessageRepository {
	return &PostgresContactMessageRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create stores a submission
func (r *PostgresContactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, r.tables.ContactMessages)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		message.Name,
		message.Email,
		message.Subject,
		message.Message,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return postgres.StoreError("create contact message", err)
	}
	return nil
}

// List retrieves all messages, newest first
func (r *PostgresContactMessageRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, subject, message, created_at
		FROM %s
		ORDER BY created_at DESC
	`, r.tables.ContactMessages)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, postgres.StoreError("list contact messages", err)
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, postgres.StoreError("scan contact message", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("iterate contact messages", err)
	}

	return messages, nil
}

// Delete removes a message
func (r *PostgresContactMessageRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.ContactMessages)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.StoreError("delete contact message", err)
	}
	if result.RowsAffected() == 0 {
		return postgres.NotFound("contact message", id)
	}
	return nil
}
