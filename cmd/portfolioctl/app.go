package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	portfolioRepo "portfolio/internal/domain/repositories/portfolio"
	"portfolio/internal/repository/postgres"
	postgresPortfolio "portfolio/internal/repository/postgres/portfolio"
	"portfolio/internal/service/admin"
	servicePortfolio "portfolio/internal/service/portfolio"
	"portfolio/internal/storage"
)

// app is one CLI invocation's wiring
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	verifier   auth.JWTVerifier
	subItems   portfolioRepo.SubItemRepository
	storage    *storage.Client
	authClient *auth.SessionClient
	session    *auth.StaticSession
	controller *admin.Controller
}

// newApp connects to the database and builds the signed-out controller.
// Callers must call close.
func newApp(ctx context.Context) (*app, error) {
	cfg := settings.serverConfig()

	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}
	// stdout carries command output
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	a := &app{cfg: cfg, logger: logger}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	a.pool = pool

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	sectionRepo := postgresPortfolio.NewSectionRepository(repoConfig)
	a.subItems = postgresPortfolio.NewSubItemRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)
	content := servicePortfolio.NewContentService(sectionRepo, a.subItems, txManager, logger)

	a.storage = storage.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.StorageBucket)
	a.session = auth.NewStaticSession(nil)
	a.controller = admin.NewController(content, a.session, logger)
	return a, nil
}

// signIn authenticates with the configured credentials and loads the mirror
func (a *app) signIn(ctx context.Context) error {
	if settings.AdminEmail == "" || settings.AdminPassword == "" {
		return errors.New("admin credentials required: set --email/--password or PORTFOLIO_ADMIN_EMAIL/PORTFOLIO_ADMIN_PASSWORD")
	}

	verifier, err := auth.NewJWTVerifier(ctx, a.cfg.SupabaseJWKSURL, a.logger)
	if err != nil {
		return err
	}
	a.verifier = verifier

	a.authClient = auth.NewSessionClient(a.cfg.SupabaseURL, a.cfg.SupabaseAnonKey, verifier)
	session, err := a.authClient.SignIn(ctx, settings.AdminEmail, settings.AdminPassword)
	if err != nil {
		return err
	}
	a.session.Set(session)
	a.logger.Debug("signed in", "user_id", session.UserID)

	return a.controller.Refresh(ctx)
}

// close signs out and releases connections
func (a *app) close(ctx context.Context) {
	if session, _ := a.session.CurrentSession(ctx); session != nil && a.authClient != nil {
		if err := a.authClient.SignOut(ctx, session.AccessToken); err != nil {
			a.logger.Warn("sign out failed", "error", err)
		}
		a.session.Clear()
	}
	if a.verifier != nil {
		_ = a.verifier.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

// withAdmin runs fn with a signed-in app
func withAdmin(ctx context.Context, fn func(a *app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.signIn(ctx); err != nil {
		return err
	}
	return fn(a)
}
