package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          Pinger
	environment string
}

func newHealthHandler(db Pinger, environment string) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		environment: environment,
	}
}

// health reports liveness plus the actual database connectivity. A process
// serving in degraded mode answers 503 here.
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error().Err(err).Msg("Health check database ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			h.responder.WriteJSON(w, map[string]string{
				"status":      "degraded",
				"environment": h.environment,
				"timestamp":   time.Now().UTC().Format(time.RFC3339),
				"error":       "database unreachable",
			})
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":      "healthy",
			"environment": h.environment,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// test is a diagnostic echo endpoint
func (h healthHandler) test() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "Connected"
		if err := h.db.Ping(ctx); err != nil {
			dbStatus = "Disconnected"
		}

		h.responder.WriteJSON(w, map[string]string{
			"message":  "Backend is working!",
			"env":      h.environment,
			"dbStatus": dbStatus,
		})
	}
}
