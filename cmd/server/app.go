package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/kauestudy/revise-api/internal/config"
	"github.com/kauestudy/revise-api/internal/platform/postgres"
	"github.com/kauestudy/revise-api/internal/service/auth"
	"github.com/kauestudy/revise-api/internal/service/priority"
	"github.com/kauestudy/revise-api/internal/service/review"
	"github.com/kauestudy/revise-api/internal/service/studylog"
	"github.com/kauestudy/revise-api/internal/service/subject"
	"github.com/kauestudy/revise-api/internal/store"
)

// application holds the shared dependencies so wiring and cleanup live in
// one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore    store.UserStore
	subjectStore store.SubjectStore
	sessionStore store.StudySessionStore
	reviewStore  store.ScheduledReviewStore

	// Services
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	subjectService   subject.Service
	priorityService  priority.Service
	reviewService    review.Service
	studylogService  studylog.Service
}

// newApplication builds the full dependency graph on top of an open
// database connection.
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
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher()
	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.subjectStore = postgres.NewPostgresSubjectStore(db, logger)
	app.sessionStore = postgres.NewPostgresStudySessionStore(db, logger)
	app.reviewStore = postgres.NewPostgresScheduledReviewStore(db, logger)

	app.subjectService = subject.NewService(app.subjectStore, logger)
	app.priorityService = priority.NewService(app.sessionStore, app.subjectStore, nil, logger)
	app.reviewService = review.NewService(app.reviewStore, app.sessionStore, app.subjectStore, logger)
	app.studylogService = studylog.NewService(db, app.sessionStore, app.reviewStore, app.subjectStore, logger)

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until the context is canceled or a shutdown signal
// arrives, then releases resources.
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
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
