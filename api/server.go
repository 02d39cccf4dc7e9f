package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"portfolio-backend/config"
	"portfolio-backend/database"
)

// maxBodyBytes caps JSON and form bodies at 10MB
const maxBodyBytes = 10 << 20

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(db database.Database, uploader MediaUploader, mailer MailSender) (Server, error) {
	c := config.New()

	port := config.GetString(c, "PORT", "5000")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	router := newRouter(db, uploader, mailer, withConfig(c), withStartupTime(startupTime))

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(db database.Database, uploader MediaUploader, mailer MailSender, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()

	environment := config.GetString(router.config, "ENVIRONMENT", "development")
	frontendOrigin := config.GetString(router.config, "FRONTEND_ORIGIN", "http://localhost:3000")
	requestTimeout := time.Duration(config.GetInt(router.config, "REQUEST_TIMEOUT_SECONDS", 300)) * time.Second

	allowedOrigins := []string{frontendOrigin}
	chiRouter.Use(CORSCheckMiddleware(allowedOrigins))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Soft timeout wraps the recovery middleware so panics inside the
	// handler goroutine are still caught
	chiRouter.Use(SoftTimeoutMiddleware(requestTimeout))
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(MaxBodySizeMiddleware(maxBodyBytes))

	rollbackUploads := config.GetBool(router.config, "MEDIA_ROLLBACK_ON_FAILURE", false)

	handlers := initializeHandlers(db, uploader, mailer, environment, rollbackUploads)

	setupRoutes(chiRouter, handlers)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
