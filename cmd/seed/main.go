package main

import (
	"context"
	"flag"
	"log"
	"os"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/repository/postgres"
	portfolioRepo "portfolio/internal/repository/postgres/portfolio"
	"portfolio/internal/seed"
	"portfolio/internal/service/contact"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed content")
	clearData := flag.Bool("clear-data", false, "Delete all rows (keep schema)")
	dataFile := flag.String("data", "", "YAML seed file (defaults to the built-in portfolio)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger, closer, err := config.NewLogger(cfg, "seed")
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("🧹 Clearing existing rows...")
		if err := clearAllData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	data, err := loadData(*dataFile)
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	siteConfig := portfolioRepo.NewSiteConfigRepository(repoConfig)
	seeder := seed.NewSeeder(
		portfolioRepo.NewSectionRepository(repoConfig),
		portfolioRepo.NewSubItemRepository(repoConfig),
		portfolioRepo.NewContactCategoryRepository(repoConfig),
		siteConfig,
		postgres.NewTransactionManager(pool, logger),
		logger,
	)

	log.Println("📝 Seeding sections and sub-items...")
	res, err := seeder.Seed(ctx, data)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
	log.Printf("✅ Created %d sections, %d sub-items, %d contact categories",
		res.Sections, res.SubItems, res.Categories)

	if cfg.ResendAPIKey != "" {
		if err := seeder.StoreAPIKey(ctx, contact.APIKeyConfigKey, cfg.ResendAPIKey); err != nil {
			log.Printf("⚠️  Could not store email API key: %v", err)
		} else {
			log.Println("🔑 Stored email API key in config table")
		}
	}

	email, password := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")
	if email != "" && password != "" {
		admin := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
		id, created, err := admin.EnsureUser(ctx, email, password)
		switch {
		case err != nil:
			log.Printf("❌ Failed to ensure admin user '%s': %v", email, err)
		case created:
			log.Printf("👤 Created admin user %s (ID: %s)", email, id)
		default:
			log.Printf("👤 Admin user %s already exists (ID: %s)", email, id)
		}
	}

	log.Println("🎉 Seeding complete!")
}

func loadData(path string) (*seed.Data, error) {
	if path == "" {
		return seed.Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.Parse(raw)
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Sections + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			order_index INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.SubItems + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			section_id UUID NOT NULL REFERENCES ` + tables.Sections + `(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			order_index INTEGER NOT NULL DEFAULT 0,
			type TEXT NOT NULL DEFAULT 'gallery',
			media_items JSONB NOT NULL DEFAULT '[]'::jsonb,
			media_urls TEXT[] NOT NULL DEFAULT '{}',
			media_types TEXT[] NOT NULL DEFAULT '{}',
			content JSONB,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.SubItems + `_section ON ` + tables.SubItems + `(section_id, order_index)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ContactCategories + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL UNIQUE,
			notification_email TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ContactMessages + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			subject TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Config + ` (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// dropAllTables drops every table, children first
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range tables.All() {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
		log.Printf("  dropped %s", table)
	}
	return nil
}

// clearAllData deletes every row but keeps the schema
func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range tables.All() {
		tag, err := pool.Exec(ctx, "DELETE FROM "+table)
		if err != nil {
			return err
		}
		log.Printf("  %s: %d rows deleted", table, tag.RowsAffected())
	}
	return nil
}
