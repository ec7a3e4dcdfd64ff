package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/quillapp/quill-api/internal/config"
	"github.com/quillapp/quill-api/internal/platform/postgres"
	"github.com/quillapp/quill-api/internal/service"
	"github.com/quillapp/quill-api/internal/service/auth"
	"github.com/quillapp/quill-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	postStore store.PostStore
	tagStore  store.TagStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	postService      service.PostService
	tagService       service.TagService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime", cfg.Auth.TokenLifetime)

	app.passwordVerifier = auth.NewBcryptHasher(auth.BcryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, auth.BcryptCost, logger)
	app.postStore = postgres.NewPostgresPostStore(db, logger)
	app.tagStore = postgres.NewPostgresTagStore(db, logger)

	app.postService, err = service.NewPostService(db, app.postStore, app.tagStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %w", err)
	}

	app.tagService, err = service.NewTagService(app.tagStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
