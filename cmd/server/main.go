package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/email"
	"portfolio/internal/handler"
	"portfolio/internal/markdown"
	"portfolio/internal/middleware"
	"portfolio/internal/repository/postgres"
	postgresPortfolio "portfolio/internal/repository/postgres/portfolio"
	"portfolio/internal/service/admin"
	"portfolio/internal/service/contact"
	servicePortfolio "portfolio/internal/service/portfolio"
	"portfolio/internal/storage"
	"portfolio/internal/web"
)

// registryPruneInterval is how often idle admin controllers are evicted
const registryPruneInterval = 10 * time.Minute

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logger, logCloser, err := config.NewLogger(cfg, "server")
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	sectionRepo := postgresPortfolio.NewSectionRepository(repoConfig)
	subItemRepo := postgresPortfolio.NewSubItemRepository(repoConfig)
	categoryRepo := postgresPortfolio.NewContactCategoryRepository(repoConfig)
	messageRepo := postgresPortfolio.NewContactMessageRepository(repoConfig)
	siteConfigRepo := postgresPortfolio.NewSiteConfigRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Create services
	contentService := servicePortfolio.NewContentService(sectionRepo, subItemRepo, txManager, logger)
	contactService := contact.NewService(categoryRepo, messageRepo, logger)
	contactRelay := contact.NewRelay(messageRepo, categoryRepo, siteConfigRepo, email.NewResendSender, contact.RelayConfig{
		FallbackAPIKey: cfg.ResendAPIKey,
		Recipient:      cfg.ContactRecipient,
		From:           cfg.ContactFrom,
	}, logger)

	sessionClient := auth.NewSessionClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, jwtVerifier)
	mediaStorage := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.StorageBucket)

	// One controller per signed-in admin session
	registry := admin.NewRegistry(contentService, auth.RequestSessions{}, logger)
	go registry.Run(ctx, registryPruneInterval, cfg.AdminSessionIdle)

	// Pages
	renderer := markdown.NewRenderer()
	pages, err := web.NewRenderer(cfg.TemplateDir, nil, logger)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}
	if cfg.IsDev() && cfg.TemplateDir != "" {
		if err := pages.Watch(ctx, cfg.TemplateDir); err != nil {
			logger.Warn("template hot reload disabled", "error", err)
		}
	}

	// Create handlers
	publicHandler := handler.NewPublicHandler(contentService, contactService, pages, renderer, logger)
	contactHandler := handler.NewContactHandler(contactRelay, contactService, logger)
	authHandler := handler.NewAuthHandler(sessionClient, registry, pages, !cfg.IsDev(), logger)
	adminHandler := handler.NewAdminHandler(registry, pages, logger)
	mediaHandler := handler.NewMediaHandler(registry, mediaStorage, config.DefaultMediaFolder, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	// Health check
	mux.HandleFunc("GET /health", publicHandler.Health)

	// Public pages
	mux.HandleFunc("GET /{$}", publicHandler.Index)
	mux.HandleFunc("GET /items/{id}", publicHandler.Detail)
	mux.HandleFunc("GET /login", authHandler.LoginPage)
	mux.HandleFunc("POST /login", authHandler.LoginForm)
	mux.HandleFunc("GET /logout", authHandler.LogoutRedirect)
	mux.HandleFunc("GET /admin", adminHandler.Dashboard)

	// Public API
	mux.HandleFunc("GET /api/sections", publicHandler.ListSections)
	mux.HandleFunc("GET /api/sections/{id}/sub-items", publicHandler.ListSubItems)
	mux.HandleFunc("/api/contact", contactHandler.Send) // any method; non-POST gets 405

	// Auth routes
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	// Admin state
	mux.Handle("GET /api/admin/state", protected(adminHandler.State))
	mux.Handle("POST /api/admin/state/dismiss-error", protected(adminHandler.DismissError))

	// Admin sections and sub-items
	mux.Handle("POST /api/admin/sections", protected(adminHandler.CreateSection))
	mux.Handle("PATCH /api/admin/sections/{id}", protected(adminHandler.UpdateSection))
	mux.Handle("DELETE /api/admin/sections/{id}", protected(adminHandler.DeleteSection))
	mux.Handle("POST /api/admin/sections/{id}/sub-items", protected(adminHandler.CreateSubItem))
	mux.Handle("PATCH /api/admin/sub-items/{id}", protected(adminHandler.UpdateSubItem))
	mux.Handle("DELETE /api/admin/sections/{sectionID}/sub-items/{id}", protected(adminHandler.DeleteSubItem))

	// Admin media
	mux.Handle("POST /api/admin/sub-items/{id}/media", protected(mediaHandler.Upload))
	mux.Handle("POST /api/admin/sub-items/{id}/media/youtube", protected(mediaHandler.AddYoutube))
	mux.Handle("DELETE /api/admin/sub-items/{id}/media/{index}", protected(mediaHandler.Remove))

	// Admin contact management
	mux.Handle("GET /api/admin/contact/categories", protected(contactHandler.ListCategories))
	mux.Handle("POST /api/admin/contact/categories", protected(contactHandler.CreateCategory))
	mux.Handle("PATCH /api/admin/contact/categories/{id}", protected(contactHandler.UpdateCategory))
	mux.Handle("DELETE /api/admin/contact/categories/{id}", protected(contactHandler.DeleteCategory))
	mux.Handle("GET /api/admin/contact/messages", protected(contactHandler.ListMessages))
	mux.Handle("DELETE /api/admin/contact/messages/{id}", protected(contactHandler.DeleteMessage))

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestLog → Auth → Routes
	h = middleware.OptionalAuth(jwtVerifier, logger)(h)
	h = middleware.RequestLog(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", "error", err)
		}
	}()

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
