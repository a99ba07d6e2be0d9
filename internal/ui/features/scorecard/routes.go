package scorecard

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/meshx-labs/meshx/internal/render"
	"github.com/meshx-labs/meshx/internal/ui/metrics"
	"github.com/meshx-labs/meshx/internal/ui/session"
)

// SetupRoutes configures routes for the scorecard feature.
func SetupRoutes(router chi.Router, reg *session.Registry, m *metrics.Collector, logger *slog.Logger) error {
	handlers := NewHandlers(reg, m, logger)

	router.Get("/scorecard", handlers.ScorecardPage)
	router.Post(render.ScorecardEventsPath, handlers.Events)

	return nil
}
