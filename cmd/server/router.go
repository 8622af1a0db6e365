package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kauestudy/revise-api/internal/api"
	apimiddleware "github.com/kauestudy/revise-api/internal/api/middleware"
)

// setupRouter builds the chi router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	tokenLifetime := time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
		tokenLifetime,
	)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	subjectHandler := api.NewSubjectHandler(app.subjectService, app.priorityService, app.logger)
	sessionHandler := api.NewSessionHandler(app.studylogService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.priorityService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/subjects", subjectHandler.List)
			r.Post("/subjects", subjectHandler.Create)
			r.Get("/subjects/{id}/review-detail", subjectHandler.ReviewDetail)

			r.Post("/sessions", sessionHandler.Create)

			r.Get("/reviews/suggestions", reviewHandler.Suggestions)
			r.Get("/reviews/dashboard", reviewHandler.Dashboard)
			r.Get("/reviews/history", reviewHandler.History)
			r.Post("/reviews/{id}/complete", reviewHandler.Complete)
			r.Post("/reviews/{id}/skip", reviewHandler.Skip)
			r.Post("/reviews/{id}/snooze", reviewHandler.Snooze)
			r.Delete("/reviews/{id}", reviewHandler.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
