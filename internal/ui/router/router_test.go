package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/render"
	"github.com/meshx-labs/meshx/internal/testutil"
	"github.com/meshx-labs/meshx/internal/ui/features"
	"github.com/meshx-labs/meshx/internal/ui/metrics"
	"github.com/meshx-labs/meshx/internal/ui/notifier"
	"github.com/meshx-labs/meshx/internal/ui/session"
)

func newRouter(t *testing.T) (chi.Router, Deps) {
	t.Helper()
	deps := Deps{
		Registry: session.NewRegistry(features.NewTestSessionStore(), render.NewResolver(catalog.Graph()), time.Hour),
		Notifier: notifier.New(),
		Metrics:  metrics.New(),
		Canvas:   render.Canvas{Width: catalog.CanvasWidth, Height: catalog.CanvasHeight},
		Logger:   testutil.NewTestLogger(t),
	}
	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, deps))
	return r, deps
}

func TestSetupRoutes(t *testing.T) {
	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{http.MethodGet, "/", http.StatusOK, `id="lineage"`},
		{http.MethodGet, "/scorecard", http.StatusOK, `id="scorecard"`},
		{http.MethodGet, "/healthz", http.StatusOK, "OK"},
		{http.MethodGet, "/static/meshx.css", http.StatusOK, ".dashboard"},
		{http.MethodGet, "/metrics", http.StatusOK, "meshx_graph_reloads_total"},
		{http.MethodGet, "/nope", http.StatusNotFound, ""},
		{http.MethodGet, render.LineageEventsPath, http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			r, deps := newRouter(t)
			// Touch every vector so it shows up in the exposition.
			deps.Metrics.GraphReloads.WithLabelValues("ok")

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
