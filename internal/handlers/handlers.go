package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"mukesh.dev/internal/background"
	"mukesh.dev/internal/config"
	"mukesh.dev/internal/middleware"
	"mukesh.dev/internal/page"
	"mukesh.dev/internal/services"
)

// Dependencies are the services the routes are built on
type Dependencies struct {
	Content    *services.ContentService
	Contact    *services.ContactService
	Background *services.BackgroundService
	Composer   *page.Composer
}

// Router is the configured route tree. Close stops the rate limiter sweeps.
type Router struct {
	http.Handler
	limiters []*middleware.RateLimiter
}

// Close stops background work owned by the routes
func (rt *Router) Close() {
	for _, l := range rt.limiters {
		l.Stop()
	}
}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, deps Dependencies) *Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)

	// Initialize handlers
	pageHandler := NewPageHandler(deps.Composer, deps.Contact, cfg.Viewport)
	projectHandler := NewProjectHandler(deps.Content.Projects())
	contentHandler := NewContentHandler(deps.Content)
	contactHandler := NewContactHandler(deps.Contact)
	backgroundHandler := NewBackgroundHandler(deps.Background, cfg.Viewport, cfg.Background.StreamInterval, cfg.CORS.AllowedOrigins)
	deps.Background.SetMaxSessions(cfg.Background.MaxStreams)

	limiter := middleware.NewRateLimiter(cfg.Contact.RateLimit, cfg.Contact.RateBurst)
	stillLimiter := middleware.NewRateLimiter(cfg.Background.StillRateLimit, cfg.Background.StillRateBurst)
	for _, l := range []*middleware.RateLimiter{limiter, stillLimiter} {
		l.StartCleanup(10 * time.Minute)
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		// Content endpoints
		r.Get("/profile", contentHandler.GetProfile)
		r.Get("/nav", contentHandler.ListNav)
		r.Get("/skills", contentHandler.ListSkills)
		r.Get("/internships", contentHandler.ListInternships)

		// Project endpoints
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)

		r.With(limiter.Middleware).Post("/contact", contactHandler.Submit)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]any{
				"status":             "ok",
				"background_streams": deps.Background.Active(),
			})
		})
	})

	// Background frames
	r.With(stillLimiter.Middleware).Get("/background.png", backgroundHandler.Still)
	r.Get("/ws/background", backgroundHandler.Stream)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(page.Static())))

	// Page
	r.Get("/", pageHandler.Index)
	r.With(limiter.Middleware).Post("/contact", pageHandler.SubmitContact)

	return &Router{Handler: r, limiters: []*middleware.RateLimiter{limiter, stillLimiter}}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// httpStatus maps a service error to a response status
func httpStatus(err error) int {
	var verr *services.ValidationError
	var lerr *background.LoadError
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &lerr), errors.Is(err, background.ErrDisposed), errors.Is(err, background.ErrNotReady),
		errors.Is(err, services.ErrTooManySessions):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
