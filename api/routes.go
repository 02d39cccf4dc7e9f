package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"portfolio-backend/errs"
)

// setupRoutes mounts the health, project and contact endpoints plus the
// catch-all route handler
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/", handlers.healthHandler.health())
		r.Get("/test", handlers.healthHandler.test())

		r.Route("/api", func(r chi.Router) {
			r.Get("/projects", handlers.projectHandler.getAllProjects())
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

			r.Post("/contact", handlers.contactHandler.submitContact())
		})
	})

	r.NotFound(routeNotFound())
}

func routeNotFound() http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "routeNotFound").Logger())

	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteError(w, errs.NewRouteNotFoundError(r.URL.Path))
	}
}
