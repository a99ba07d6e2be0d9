package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/interaction"
	"github.com/meshx-labs/meshx/internal/lineage"
)

func newRegistry(ttl time.Duration) *Registry {
	store := sessions.NewCookieStore([]byte("test-secret"))
	return NewRegistry(store, interaction.NewResolver(catalog.Graph()), ttl)
}

// visit performs a request carrying cookies and returns the viewer and
// the cookies to send next time.
func visit(t *testing.T, reg *Registry, cookies []*http.Cookie) (*Viewer, []*http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()

	v, err := reg.Viewer(rec, req)
	require.NoError(t, err)

	if set := rec.Result().Cookies(); len(set) > 0 {
		return v, set
	}
	return v, cookies
}

func TestRegistry_CookieIdentifiesViewer(t *testing.T) {
	reg := newRegistry(time.Hour)

	first, cookies := visit(t, reg, nil)
	require.NotEmpty(t, cookies, "first visit sets the cookie")

	again, _ := visit(t, reg, cookies)
	assert.Same(t, first, again)

	other, _ := visit(t, reg, nil)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_ReturningRequestRefreshesCookie(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret"))
	store.MaxAge(60)
	reg := NewRegistry(store, interaction.NewResolver(catalog.Graph()), time.Minute)

	first, cookies := visit(t, reg, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	again, err := reg.Viewer(rec, req)
	require.NoError(t, err)
	assert.Same(t, first, again)

	refreshed := rec.Result().Cookies()
	require.Len(t, refreshed, 1, "every request pushes the expiry forward")
	assert.Equal(t, cookieName, refreshed[0].Name)
	assert.Equal(t, 60, refreshed[0].MaxAge)
}

func TestRegistry_ViewersHaveIndependentState(t *testing.T) {
	reg := newRegistry(time.Hour)
	a, _ := visit(t, reg, nil)
	b, _ := visit(t, reg, nil)

	a.Lineage.Dispatch(interaction.NodeClick{ID: catalog.NodeSAP})
	a.HoverBlocker("01")

	assert.True(t, b.Lineage.Snapshot().IsZero())
	assert.Empty(t, b.Blocker())
	assert.Equal(t, "01", a.Blocker())
}

func TestRegistry_Sweep(t *testing.T) {
	reg := newRegistry(time.Minute)
	now := time.Unix(1_700_000_000, 0)
	reg.now = func() time.Time { return now }

	_, stale := visit(t, reg, nil)
	now = now.Add(30 * time.Second)
	visit(t, reg, nil)
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, reg.Sweep())
	assert.Equal(t, 1, reg.Len())

	// The swept viewer comes back with a fresh state under the same id.
	v, _ := visit(t, reg, stale)
	assert.True(t, v.Lineage.Snapshot().IsZero())
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_SweepWithoutTTL(t *testing.T) {
	reg := newRegistry(0)
	visit(t, reg, nil)

	assert.Equal(t, 0, reg.Sweep())
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_Swap(t *testing.T) {
	reg := newRegistry(time.Hour)
	v, _ := visit(t, reg, nil)
	v.Lineage.Dispatch(interaction.NodeEnter{ID: catalog.NodeKafka})
	v.Lineage.Dispatch(interaction.NodeClick{ID: catalog.NodeSAP})

	g, err := lineage.New(
		[]lineage.Node{
			{ID: catalog.NodeSAP, Name: "SAP_ERP", Category: lineage.CategorySource, X: 30, Y: 40},
			{ID: catalog.NodeEngine, Name: "ENGINE", Category: lineage.CategoryTransform, X: 230, Y: 135},
			{ID: catalog.NodeProduct, Name: "DP", Category: lineage.CategoryOutput, X: 420, Y: 135},
		},
		[]lineage.Edge{
			{ID: "e1", From: catalog.NodeSAP, To: catalog.NodeEngine},
			{ID: "e4", From: catalog.NodeEngine, To: catalog.NodeProduct},
		},
	)
	require.NoError(t, err)
	next := interaction.NewResolver(g)

	reg.Swap(next)

	assert.Same(t, next, reg.Resolver())
	assert.Equal(t, interaction.State{Selected: catalog.NodeSAP}, v.Lineage.Snapshot())

	fresh, _ := visit(t, reg, nil)
	assert.Same(t, next, fresh.Lineage.Resolver())
}
