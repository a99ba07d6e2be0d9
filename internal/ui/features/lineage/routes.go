package lineage

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/meshx-labs/meshx/internal/render"
	"github.com/meshx-labs/meshx/internal/ui/metrics"
	"github.com/meshx-labs/meshx/internal/ui/notifier"
	"github.com/meshx-labs/meshx/internal/ui/session"
)

// SetupRoutes configures routes for the lineage feature.
func SetupRoutes(
	router chi.Router,
	reg *session.Registry,
	notify *notifier.Notifier,
	m *metrics.Collector,
	canvas render.Canvas,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(reg, notify, m, canvas, logger)

	router.Get("/", handlers.DashboardPage)
	router.Post(render.LineageEventsPath, handlers.Events)
	router.Get(render.LineageUpdatesPath, handlers.Updates)

	return nil
}
