// Package features provides shared test utilities for UI feature tests.
package features

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/render"
	"github.com/meshx-labs/meshx/internal/testutil"
	"github.com/meshx-labs/meshx/internal/ui/metrics"
	"github.com/meshx-labs/meshx/internal/ui/notifier"
	"github.com/meshx-labs/meshx/internal/ui/session"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Registry *session.Registry
	Notifier *notifier.Notifier
	Metrics  *metrics.Collector
	Canvas   render.Canvas

	t testing.TB
}

// SetupTestFixture wires a registry over the catalog graph.
func SetupTestFixture(t testing.TB) *TestFixture {
	t.Helper()
	return &TestFixture{
		Registry: session.NewRegistry(NewTestSessionStore(), render.NewResolver(catalog.Graph()), time.Hour),
		Notifier: notifier.New(),
		Metrics:  metrics.New(),
		Canvas:   render.Canvas{Width: catalog.CanvasWidth, Height: catalog.CanvasHeight},
		t:        t,
	}
}

// Logger returns a logger writing to the test log.
func (f *TestFixture) Logger() *slog.Logger {
	return testutil.NewTestLogger(f.t)
}

// Browser replays cookies between requests like a single browser tab.
type Browser struct {
	t       testing.TB
	cookies []*http.Cookie
}

// NewBrowser creates a browser without cookies.
func NewBrowser(t testing.TB) *Browser {
	return &Browser{t: t}
}

// Get performs a GET against h.
func (b *Browser) Get(h http.HandlerFunc, path string) *httptest.ResponseRecorder {
	b.t.Helper()
	return b.do(h, httptest.NewRequest(http.MethodGet, path, nil))
}

// Post performs a datastar POST carrying signals as the JSON body.
func (b *Browser) Post(h http.HandlerFunc, path string, signals any) *httptest.ResponseRecorder {
	b.t.Helper()
	body, err := json.Marshal(signals)
	require.NoError(b.t, err)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	return b.do(h, req)
}

// Request returns a GET request carrying the browser's cookies, for
// handlers the test drives itself.
func (b *Browser) Request(path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	return req
}

func (b *Browser) do(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	if set := rec.Result().Cookies(); len(set) > 0 {
		b.cookies = set
	}
	return rec
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
