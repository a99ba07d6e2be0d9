// Package lineage serves the dashboard and its interactive lineage graph.
package lineage

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/interaction"
	graph "github.com/meshx-labs/meshx/internal/lineage"
	"github.com/meshx-labs/meshx/internal/render"
	"github.com/meshx-labs/meshx/internal/ui/metrics"
	"github.com/meshx-labs/meshx/internal/ui/notifier"
	"github.com/meshx-labs/meshx/internal/ui/session"
)

// Signals is the datastar signal set posted by pointer bindings.
type Signals struct {
	Kind string  `json:"kind"`
	Node string  `json:"node"`
	Edge string  `json:"edge"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Handlers provides HTTP handlers for the lineage feature.
type Handlers struct {
	registry *session.Registry
	notifier *notifier.Notifier
	metrics  *metrics.Collector
	canvas   render.Canvas
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(reg *session.Registry, notify *notifier.Notifier, m *metrics.Collector, canvas render.Canvas, logger *slog.Logger) *Handlers {
	return &Handlers{
		registry: reg,
		notifier: notify,
		metrics:  m,
		canvas:   canvas,
		logger:   logger,
	}
}

// DashboardPage renders the dashboard with the viewer's current state.
func (h *Handlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	viewer, err := h.registry.Viewer(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.metrics.Viewers.Set(float64(h.registry.Len()))

	resolver, state := viewer.Lineage.View()
	data := render.DashboardData{
		Title:    "Dashboard",
		Resolver: resolver,
		State:    state,
		Canvas:   h.canvas,
		Stats:    catalog.Stats(),
		Overlay:  catalog.Overlay(),
		Features: catalog.Features(),
	}
	if detail, ok, err := h.detail(state); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	} else if ok {
		data.Detail = &detail
	}

	if err := render.Dashboard(data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Events applies one pointer event to the viewer's state and answers with
// patches for every element that depends on it.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.reject(w, "bad_signals", err)
		return
	}

	ev, err := interaction.Parse(signals.Kind, signals.Node, signals.Edge, graph.Point{X: signals.X, Y: signals.Y})
	if err != nil {
		h.reject(w, "bad_event", err)
		return
	}

	viewer, err := h.registry.Viewer(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := viewer.Lineage.Handle(ev); err != nil {
		reason := "unknown_id"
		if !errors.Is(err, graph.ErrNodeNotFound) && !errors.Is(err, graph.ErrEdgeNotFound) {
			reason = "invalid"
		}
		h.reject(w, reason, err)
		return
	}
	h.metrics.Events.WithLabelValues(signals.Kind).Inc()

	sse := datastar.NewSSE(w, r)
	if err := h.sendLineage(sse, viewer); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Updates is the long-lived SSE endpoint of the dashboard. It pushes a
// fresh render whenever the graph is reloaded; the page itself carries
// the initial state.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	viewer, err := h.registry.Viewer(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case gen, ok := <-updates:
			if !ok {
				return
			}
			h.logger.Debug("pushing reloaded graph", "generation", gen, "viewer", viewer.ID)
			if err := h.sendLineage(sse, viewer); err != nil {
				_ = sse.ConsoleError(err)
				// Keep the stream open; the next reload may succeed.
			}
		}
	}
}

// sendLineage patches the graph, the detail panel and the feature list.
func (h *Handlers) sendLineage(sse *datastar.ServerSentEventGenerator, viewer *session.Viewer) error {
	resolver, state := viewer.Lineage.View()

	if err := sse.PatchElementTempl(render.Lineage(resolver, state, render.LineageOptions{Canvas: h.canvas, Interactive: true})); err != nil {
		return err
	}
	h.metrics.Patches.WithLabelValues(render.LineageID).Inc()

	detail, ok, err := h.detail(state)
	if err != nil {
		return err
	}
	panel := render.EmptyDetail()
	if ok {
		panel = render.Detail(detail)
	}
	if err := sse.PatchElementTempl(panel); err != nil {
		return err
	}
	h.metrics.Patches.WithLabelValues(render.DetailID).Inc()

	if err := sse.PatchElementTempl(render.Features(catalog.Features(), state)); err != nil {
		return err
	}
	h.metrics.Patches.WithLabelValues(render.FeaturesID).Inc()
	return nil
}

// detail returns the panel data of the selected source, if any.
func (h *Handlers) detail(state interaction.State) (render.DetailData, bool, error) {
	if state.Selected == "" {
		return render.DetailData{}, false, nil
	}
	d, ok := catalog.Detail(state.Selected)
	if !ok {
		return render.DetailData{}, false, nil
	}
	data, err := render.NewDetailData(d, h.canvas)
	if err != nil {
		return render.DetailData{}, false, err
	}
	return data, true, nil
}

func (h *Handlers) reject(w http.ResponseWriter, reason string, err error) {
	h.metrics.Rejected.WithLabelValues(reason).Inc()
	h.logger.Debug("rejected lineage event", "reason", reason, "error", err)
	http.Error(w, err.Error(), http.StatusBadRequest)
}
