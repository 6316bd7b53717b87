// Package httpapi exposes the authentication service as a JSON HTTP API.
// Every operation answers with a success flag plus either a payload or a
// human-readable error message; handlers map the service's sentinel errors
// onto HTTP status codes.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/studyplanner/studyauth/internal/logging"
	"github.com/studyplanner/studyauth/internal/server/auth"
)

type Server struct {
	address         string
	allowedOrigin   string
	shutdownTimeout time.Duration
	auth            *auth.Service
	logger          logging.Logger
}

func NewServer(address, allowedOrigin string, shutdownTimeout time.Duration, as *auth.Service, l logging.Logger) *Server {
	return &Server{
		address:         address,
		allowedOrigin:   allowedOrigin,
		shutdownTimeout: shutdownTimeout,
		auth:            as,
		logger:          l.With("module", "httpapi"),
	}
}

// Handler builds the routed and middleware-wrapped handler tree.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/users/{username}", s.handleProfile).Methods(http.MethodGet)
	api.HandleFunc("/password/forgot", s.handleForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/password/verify", s.handleVerifyResetToken).Methods(http.MethodPost)
	api.HandleFunc("/password/reset", s.handleResetPassword).Methods(http.MethodPost)
	api.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)

	var h http.Handler = r
	h = s.logRequests(h)
	h = s.requestID(h)
	h = handlers.RecoveryHandler()(h)
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{s.allowedOrigin}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)

	return h
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
