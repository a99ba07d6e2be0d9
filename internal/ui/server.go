// Package ui provides the MeshX Foundation web dashboard.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/lineage"
	"github.com/meshx-labs/meshx/internal/render"
	"github.com/meshx-labs/meshx/internal/ui/metrics"
	"github.com/meshx-labs/meshx/internal/ui/notifier"
	"github.com/meshx-labs/meshx/internal/ui/router"
	"github.com/meshx-labs/meshx/internal/ui/session"
)

const reloadDebounce = 100 * time.Millisecond

// Server is the main UI server.
type Server struct {
	port            int
	watch           bool
	graphFile       string
	shutdownTimeout time.Duration
	sessionTTL      time.Duration
	canvas          render.Canvas
	logger          *slog.Logger

	registry *session.Registry
	notifier *notifier.Notifier
	metrics  *metrics.Collector
}

// Config holds configuration for the UI server.
type Config struct {
	// Graph is the initial graph. Nil falls back to GraphFile, then to the
	// built-in catalog graph.
	Graph *lineage.Graph
	// GraphFile is reloaded on change when Watch is set.
	GraphFile       string
	Port            int
	Watch           bool
	SessionSecret   string
	SessionTTL      time.Duration
	ShutdownTimeout time.Duration
	Canvas          render.Canvas
	Logger          *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := cfg.Graph
	if g == nil && cfg.GraphFile != "" {
		loaded, err := lineage.LoadFile(cfg.GraphFile)
		if err != nil {
			return nil, err
		}
		g = loaded
	}
	if g == nil {
		g = catalog.Graph()
	}

	canvas := cfg.Canvas
	if canvas.Width <= 0 || canvas.Height <= 0 {
		canvas = render.Canvas{Width: catalog.CanvasWidth, Height: catalog.CanvasHeight}
	}

	secret := cfg.SessionSecret
	if secret == "" {
		// Viewers lose their state across restarts.
		secret = uuid.NewString()
		logger.Warn("no session secret configured, using an ephemeral one")
	}
	sessionStore := sessions.NewCookieStore([]byte(secret))
	sessionStore.MaxAge(int(cfg.SessionTTL.Seconds()))
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	shutdown := cfg.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = 5 * time.Second
	}

	return &Server{
		port:            cfg.Port,
		watch:           cfg.Watch,
		graphFile:       cfg.GraphFile,
		shutdownTimeout: shutdown,
		sessionTTL:      cfg.SessionTTL,
		canvas:          canvas,
		logger:          logger,
		registry:        session.NewRegistry(sessionStore, render.NewResolver(g), cfg.SessionTTL),
		notifier:        notifier.New(),
		metrics:         metrics.New(),
	}, nil
}

// Handler builds the HTTP handler with all routes mounted.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	err := router.SetupRoutes(r, router.Deps{
		Registry: s.registry,
		Notifier: s.notifier,
		Metrics:  s.metrics,
		Canvas:   s.canvas,
		Logger:   s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.graphFile != "" {
		eg.Go(func() error {
			return s.watchGraph(egctx)
		})
	}

	if s.sessionTTL > 0 {
		eg.Go(func() error {
			s.sweep(egctx)
			return nil
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Reload re-reads the graph file and pushes the new graph to every open
// dashboard. A failed load keeps the current graph.
func (s *Server) Reload() error {
	g, err := lineage.LoadFile(s.graphFile)
	if err != nil {
		s.metrics.GraphReloads.WithLabelValues("error").Inc()
		return err
	}

	s.registry.Swap(render.NewResolver(g))
	gen := s.notifier.Broadcast()
	s.metrics.GraphReloads.WithLabelValues("ok").Inc()
	s.logger.Info("graph reloaded", "file", s.graphFile, "generation", gen,
		"nodes", len(g.Nodes()), "edges", len(g.Edges()))
	return nil
}

// Registry returns the viewer registry.
func (s *Server) Registry() *session.Registry {
	return s.registry
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *metrics.Collector {
	return s.metrics
}

// watchGraph reloads the graph file whenever it changes. The parent
// directory is watched so editors that replace the file by rename are
// picked up too.
func (s *Server) watchGraph(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	target, err := filepath.Abs(s.graphFile)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		s.logger.Error("failed to watch graph file", "file", target, "error", err)
		// Serve without reloads.
		<-ctx.Done()
		return nil
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isGraphChange(event, target) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				s.logger.Debug("graph file changed", "file", event.Name, "op", event.Op.String())
				if err := s.Reload(); err != nil {
					s.logger.Error("graph reload failed", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func isGraphChange(event fsnotify.Event, target string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	return err == nil && name == target
}

// sweep drops idle viewers until ctx is done.
func (s *Server) sweep(ctx context.Context) {
	interval := s.sessionTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.registry.Sweep(); n > 0 {
				s.logger.Debug("dropped idle viewers", "count", n)
			}
			s.metrics.Viewers.Set(float64(s.registry.Len()))
		}
	}
}
