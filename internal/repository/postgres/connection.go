package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"portfolio/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Sections          string
	SubItems          string
	ContactCategories string
	ContactMessages   string
	Config            string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Sections:          fmt.Sprintf("%ssections", prefix),
		SubItems:          fmt.Sprintf("%ssub_items", prefix),
		ContactCategories: fmt.Sprintf("%scontact_categories", prefix),
		ContactMessages:   fmt.Sprintf("%scontact_messages", prefix),
		Config:            fmt.Sprintf("%sconfig", prefix),
	}
}

// All returns every table, children before parents (safe drop order).
func (t *TableNames) All() []string {
	return []string{t.SubItems, t.Sections, t.ContactMessages, t.ContactCategories, t.Config}
}

// CreateConnectionPool creates a pgx pool for the Supabase database.
//
// Port 6543 is Supabase's transaction pooler (PgBouncer), which does not
// support prepared statements. For that port the pool switches to
// QueryExecModeCacheDescribe, which still uses the extended protocol so JSONB
// media columns encode correctly. An explicit default_query_exec_mode in the
// connection string takes precedence.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// Pool size
	config.MaxConns = 10
	config.MinConns = 2

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in ctx, or pool when there is none.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
