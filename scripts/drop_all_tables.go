package main

import (
	"context"
	"fmt"
	"log"

	"portfolio/internal/config"
	"portfolio/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.SupabaseDBURL == "" {
		log.Fatal("SUPABASE_DB_URL environment variable is required")
	}
	if cfg.Environment == "prod" {
		log.Fatal("refusing to drop production tables")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = conn.Close(ctx) }() // Error ignored: script exiting

	tables := postgres.NewTableNames(cfg.TablePrefix)
	for _, table := range tables.All() {
		if _, err := conn.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			log.Fatalf("Failed to drop %s: %v", table, err)
		}
	}

	fmt.Printf("All tables dropped successfully (prefix: %q)\n", cfg.TablePrefix)
}
