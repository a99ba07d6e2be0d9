// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meshx-labs/meshx/internal/render"
	lineageFeature "github.com/meshx-labs/meshx/internal/ui/features/lineage"
	scorecardFeature "github.com/meshx-labs/meshx/internal/ui/features/scorecard"
	"github.com/meshx-labs/meshx/internal/ui/metrics"
	"github.com/meshx-labs/meshx/internal/ui/notifier"
	"github.com/meshx-labs/meshx/internal/ui/resources"
	"github.com/meshx-labs/meshx/internal/ui/session"
)

// Deps are the shared services every feature draws from.
type Deps struct {
	Registry *session.Registry
	Notifier *notifier.Notifier
	Metrics  *metrics.Collector
	Canvas   render.Canvas
	Logger   *slog.Logger
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) error {
	router.Handle("/static/*", resources.Handler())
	router.Handle("/metrics", deps.Metrics.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if err := lineageFeature.SetupRoutes(router, deps.Registry, deps.Notifier, deps.Metrics, deps.Canvas, deps.Logger); err != nil {
		return err
	}

	if err := scorecardFeature.SetupRoutes(router, deps.Registry, deps.Metrics, deps.Logger); err != nil {
		return err
	}

	return nil
}
