// Package scorecard serves the AI readiness scorecard.
package scorecard

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/render"
	"github.com/meshx-labs/meshx/internal/ui/metrics"
	"github.com/meshx-labs/meshx/internal/ui/session"
)

// Signals is the datastar signal set of the scorecard screen.
type Signals struct {
	Blocker string `json:"blocker"`
}

// Handlers provides HTTP handlers for the scorecard feature.
type Handlers struct {
	registry *session.Registry
	metrics  *metrics.Collector
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(reg *session.Registry, m *metrics.Collector, logger *slog.Logger) *Handlers {
	return &Handlers{registry: reg, metrics: m, logger: logger}
}

// ScorecardPage renders the scorecard with the viewer's hovered blocker.
func (h *Handlers) ScorecardPage(w http.ResponseWriter, r *http.Request) {
	viewer, err := h.registry.Viewer(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := render.ScorecardPage(data(viewer.Blocker())).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Events records the blocker under the pointer and repaints the grid.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.reject(w, "bad_signals", err)
		return
	}
	if signals.Blocker != "" {
		if _, ok := catalog.BlockerByID(signals.Blocker); !ok {
			h.reject(w, "unknown_id", fmt.Errorf("blocker not found: %q", signals.Blocker))
			return
		}
	}

	viewer, err := h.registry.Viewer(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	hovered := viewer.HoverBlocker(signals.Blocker)
	h.metrics.Events.WithLabelValues("blocker-hover").Inc()

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(render.Scorecard(data(hovered))); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	h.metrics.Patches.WithLabelValues(render.ScorecardID).Inc()
}

func (h *Handlers) reject(w http.ResponseWriter, reason string, err error) {
	h.metrics.Rejected.WithLabelValues(reason).Inc()
	h.logger.Debug("rejected scorecard event", "reason", reason, "error", err)
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func data(hovered string) render.ScorecardData {
	return render.ScorecardData{
		Domains:        catalog.Domains(),
		Blockers:       catalog.Blockers(),
		Overall:        catalog.OverallScore,
		HoveredBlocker: hovered,
	}
}
