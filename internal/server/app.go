// Package server initializes and runs the highlight service.
// It wires the storage backend, the analyzer, the optional object store
// and the HTTP API, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sportclip/highlightd/internal/logging"
	"github.com/sportclip/highlightd/internal/server/analyzer"
	"github.com/sportclip/highlightd/internal/server/config"
	"github.com/sportclip/highlightd/internal/server/httpapi"
	"github.com/sportclip/highlightd/internal/server/objectstore"
	"github.com/sportclip/highlightd/internal/server/repositories/repomanager"
	"github.com/sportclip/highlightd/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	var db *sql.DB
	var repos repomanager.RepositoryManager

	if cfg.DatabaseDSN != "" {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		pm := repomanager.NewPostgresRepositoryManager()
		if err := pm.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("db migration error: %w", err)
		}
		repos = pm
	} else {
		logger.Warn(ctx, "no database DSN configured, using in-memory storage")
		repos = repomanager.NewInMemoryRepositoryManager()
	}

	sampler := analyzer.NewRandomSampler(analyzer.NewFFProbe(cfg.FFProbePath))

	var archive services.Archive
	if s3 := objectstore.NewS3Archive(cfg); s3.Enabled() {
		archive = s3
	}

	accounts := services.NewAccountService(db, repos, cfg)
	upload := services.NewUploadService(db, repos, sampler, archive, cfg, logger)
	query := services.NewQueryService(db, repos, archive, logger)

	srv := httpapi.NewServer(cfg.EndpointAddr, logger, accounts, upload, query, cfg.SecretKey, cfg.MaxUploadBytes)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "error closing db", "error", err.Error())
		}
	}
}
