package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/hooplab/internal/adapters/dataset"
	"github.com/okian/hooplab/internal/adapters/http/api"
	"github.com/okian/hooplab/internal/adapters/http/swagger"
	app "github.com/okian/hooplab/internal/app"
	"github.com/okian/hooplab/internal/config"
	"github.com/okian/hooplab/internal/domain/model"
	"github.com/okian/hooplab/pkg/logger"
	"github.com/okian/hooplab/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	mux, svc, err := bootstrap(ctx, cfg, loggerInstance)
	if err != nil {
		loggerInstance.Error(ctx, "bootstrap failed", logger.Error(err))
		os.Exit(1)
	}

	if cfg.RefreshSchedule != "" && cfg.DatasetPath != "" {
		refresher := app.NewRefresher(svc, func(ctx context.Context) (*model.Dataset, error) {
			return dataset.Load(ctx, cfg.DatasetPath, cfg.DatasetSheet)
		}, cfg.RefreshSchedule, loggerInstance.Named("refresh"))
		if err := refresher.Start(ctx); err != nil {
			loggerInstance.Error(ctx, "refresh schedule failed", logger.Error(err))
			os.Exit(1)
		}
		defer refresher.Stop()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(fmt.Errorf("%w: %w", api.ErrServe, err)))
			stop()
		}
	}()

	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// bootstrap builds the service, runs the pipeline over the configured dataset
// and registers the API and docs routes. Without a dataset the server starts
// empty and analysis endpoints answer 503.
func bootstrap(ctx context.Context, cfg *config.Config, l logger.Logger) (*http.ServeMux, *app.Service, error) {
	metrics.Init(metrics.WithNamespace(cfg.MetricsNamespace), metrics.WithMetricsEnabled(cfg.MetricsEnabled))
	svc := app.New(app.OptionsFromConfig(cfg, l)...)

	if cfg.DatasetPath == "" {
		l.Warn(ctx, "no dataset_path configured; serving without a run")
	} else {
		ds, err := dataset.Load(ctx, cfg.DatasetPath, cfg.DatasetSheet)
		if err != nil {
			return nil, nil, fmt.Errorf("load dataset: %w", err)
		}
		if _, err := svc.Run(ctx, ds); err != nil {
			return nil, nil, fmt.Errorf("run pipeline: %w", err)
		}
	}

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc).Register(mux)
	return mux, svc, nil
}
