package portfolio

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	portfolioRepo "portfolio/internal/domain/repositories/portfolio"
	"portfolio/internal/repository/postgres"
)

// PostgresSiteConfigRepository implements the SiteConfigRepository interface
type PostgresSiteConfigRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewSiteConfigRepository creates a new config table repository
func NewSiteConfigRepository(config *postgres.RepositoryConfig) portfolioRepo.SiteConfigRepository {
	return &PostgresSiteConfigRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Get returns the value stored under key
func (r *PostgresSiteConfigRepository) Get(ctx context.Context, key string) (string, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, r.tables.Config)

	var value string
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return "", postgres.NotFound("config key", key)
		}
		return "", postgres.StoreError("get config", err)
	}
	return value, nil
}

// Set upserts key
func (r *PostgresSiteConfigRepository) Set(ctx context.Context, key, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, r.tables.Config)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, key, value); err != nil {
		return postgres.StoreError("set config", err)
	}
	return nil
}
