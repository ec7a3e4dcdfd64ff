package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/quillapp/quill-api/internal/api"
	apiMiddleware "github.com/quillapp/quill-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	postHandler := api.NewPostHandler(app.postService, app.logger)
	tagHandler := api.NewTagHandler(app.tagService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/users", authHandler.Register)
		r.Post("/userAuthentication", authHandler.Login)

		// Protected routes: every post and tag endpoint requires a token,
		// reads included.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/posts", postHandler.Create)
			r.Get("/posts", postHandler.List)
			r.Get("/posts/{id}", postHandler.GetByID)
			r.Put("/posts/{id}", postHandler.Update)
			r.Delete("/posts/{id}", postHandler.Delete)

			r.Get("/tags", tagHandler.List)
		})
	})

	// Health check endpoints
	healthCheck := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("API is running...")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	}
	r.Get("/", healthCheck)
	r.Get("/health", healthCheck)

	return r
}
