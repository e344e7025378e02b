// Package httpapi exposes the highlight service over HTTP: account
// registration and login, video upload, and record listing.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sportclip/highlightd/internal/logging"
	"github.com/sportclip/highlightd/internal/server/services"
)

type Server struct {
	address        string
	logger         logging.Logger
	accounts       *services.AccountService
	upload         *services.UploadService
	query          *services.QueryService
	jwtSecret      []byte
	maxUploadBytes int64
}

func NewServer(address string, logger logging.Logger, accounts *services.AccountService, upload *services.UploadService, query *services.QueryService, secretKey string, maxUploadBytes int64) *Server {
	return &Server{
		address:        address,
		logger:         logger.With("module", "http_server"),
		accounts:       accounts,
		upload:         upload,
		query:          query,
		jwtSecret:      []byte(secretKey),
		maxUploadBytes: maxUploadBytes,
	}
}

// Router builds the public route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.bearerAuthMiddleware)

	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/videos", s.handleUpload).Methods(http.MethodPost)
	api.HandleFunc("/highlights", s.handleListRecords).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
