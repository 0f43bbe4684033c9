package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"amesdash/internal/config"
	apperrors "amesdash/internal/errors"
	"amesdash/internal/infrastructure"
	custommw "amesdash/internal/middleware"
)

// Application is the preview server for the generated dashboard assets. It
// serves the static web tree and a small JSON API over the built metrics.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Paths  *config.Paths
	Router chi.Router
	Server *http.Server
}

// NewApplication wires configuration, logging, paths and routes
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize paths: %w", err)
	}

	app := &Application{
		Config: cfg,
		Logger: infrastructure.WithComponent(logger, "dashboard-server"),
		Paths:  paths,
	}
	app.setupRouter()
	app.createServer()
	return app, nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(middleware.Compress(5))

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/health", a.handleHealth)
		r.Get("/metrics", a.handleMetrics)
	})

	// The generated web tree is served as-is; index.html at the root.
	r.Handle("/*", http.FileServer(http.Dir(a.Paths.WebDir)))

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// handleHealth reports liveness plus whether the metrics bundle exists yet
func (a *Application) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, err := os.Stat(a.Paths.MetricsJSON)
	render.JSON(w, r, map[string]interface{}{
		"status":        "ok",
		"version":       config.AppVersion,
		"metrics_built": err == nil,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// handleMetrics streams the built metrics record. The payload on disk is
// already canonical JSON so it is passed through without re-encoding.
func (a *Application) handleMetrics(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(a.Paths.MetricsJSON)
	if err != nil {
		if os.IsNotExist(err) {
			render.Render(w, r, apperrors.ErrMetricsNotBuilt)
			return
		}
		a.Logger.ErrorContext(r.Context(), "Failed to read metrics file",
			slog.String("path", a.Paths.MetricsJSON),
			slog.String("error", err.Error()))
		render.Render(w, r, apperrors.ErrInternalServer)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Start launches the HTTP server in the background
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting preview server",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.Int("port", a.Config.Server.Port),
		slog.String("web_dir", a.Paths.WebDir))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Preview server started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the server
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down preview server")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	return infrastructure.CloseLogFile()
}

// Run starts the server and blocks until an interrupt arrives
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
