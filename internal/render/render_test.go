package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/interaction"
)

var testCanvas = Canvas{Width: catalog.CanvasWidth, Height: catalog.CanvasHeight}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func newResolver() *interaction.Resolver {
	return NewResolver(catalog.Graph())
}

func TestLineage_HoveredSourceShowsOnlyItsTooltip(t *testing.T) {
	r := newResolver()
	s := r.Apply(interaction.State{}, interaction.NodeEnter{ID: catalog.NodeSAP})

	out := renderString(t, Lineage(r, s, LineageOptions{Canvas: testCanvas}))

	assert.Equal(t, 1, strings.Count(out, `class="edge-tooltip"`))
	assert.Contains(t, out, "~2.1k events/sec")
	assert.NotContains(t, out, "~3.8k events/sec")
	// Tooltip box is centered on the e1 midpoint (210, 122.5).
	assert.Contains(t, out, `<rect x="155" y="104.5" width="110" height="18"`)
	assert.Contains(t, out, `<text x="210" y="116.5" text-anchor="middle"`)
}

func TestLineage_NoHoverNoTooltips(t *testing.T) {
	r := newResolver()

	out := renderString(t, Lineage(r, interaction.State{}, LineageOptions{Canvas: testCanvas}))

	assert.NotContains(t, out, "edge-tooltip")
	assert.Contains(t, out, `viewBox="0 0 620 370"`)
	assert.Contains(t, out, `d="M 190 75 C 210 75, 210 170, 230 170"`)
}

func TestLineage_NodeGeometry(t *testing.T) {
	r := newResolver()

	out := renderString(t, Lineage(r, interaction.State{}, LineageOptions{Canvas: testCanvas}))

	assert.Contains(t, out, `<rect x="30" y="40" width="160" height="70"`)
	assert.Contains(t, out, `<text x="40" y="58"`)
	// "DOMAIN: LOGISTICS" is 17 characters wide.
	assert.Contains(t, out, `<rect x="39" y="84" width="103.5" height="14"`)
	assert.Contains(t, out, `DOMAIN: LOGISTICS`)
	// Only the transform carries the status dot.
	assert.Equal(t, 1, strings.Count(out, "status-dot"))
	assert.Contains(t, out, `cx="378" cy="149"`)
}

func TestLineage_Emphasis(t *testing.T) {
	r := newResolver()
	s := interaction.State{Selected: catalog.NodeKafka}

	out := renderString(t, Lineage(r, s, LineageOptions{Canvas: testCanvas}))

	kafka := between(t, out, `data-node="kafka-stream"`, "</g>")
	assert.Contains(t, kafka, `stroke="#c45a2d"`)
	sap := between(t, out, `data-node="sap-erp"`, "</g>")
	assert.NotContains(t, sap, `stroke="#c45a2d"`)
}

func TestLineage_Interactive(t *testing.T) {
	r := newResolver()

	static := renderString(t, Lineage(r, interaction.State{}, LineageOptions{Canvas: testCanvas}))
	live := renderString(t, Lineage(r, interaction.State{}, LineageOptions{Canvas: testCanvas, Interactive: true}))

	assert.NotContains(t, static, "data-on:")
	assert.Contains(t, live, "data-on:mouseenter")
	assert.Contains(t, live, "edge-enter")
	assert.Contains(t, live, "@post(&#39;/lineage/events&#39;)")

	hit := between(t, live, `class="edge-hit-area"`, "/>")
	assert.Contains(t, hit, `data-on:click=`)
	assert.Contains(t, hit, "pointer-down", "edge clicks are presses outside every selectable node")
}

func TestLineage_EscapesLabels(t *testing.T) {
	r := newResolver()
	s := interaction.State{HoveredEdge: "e1"}

	out := renderString(t, Lineage(r, s, LineageOptions{Canvas: testCanvas}))

	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "~2.1k events/sec")
}

func TestDetail(t *testing.T) {
	d, ok := catalog.Detail(catalog.NodeREST)
	require.True(t, ok)
	data, err := NewDetailData(d, testCanvas)
	require.NoError(t, err)

	out := renderString(t, Detail(data))

	assert.Contains(t, out, `id="detail"`)
	assert.Contains(t, out, "Priya Nair")
	assert.Contains(t, out, "97.2%")
	assert.Contains(t, out, "BREACHED")
	assert.Contains(t, out, `color: #ff3344`)
	assert.Contains(t, out, "<polyline")
	assert.Contains(t, out, "close")
}

func TestDetail_SingleSampleDrawsMarkerOnly(t *testing.T) {
	d := catalog.SourceDetail{NodeID: "x", System: "X", SLA: catalog.SLAOnTime, Volume: []float64{5}}
	data, err := NewDetailData(d, testCanvas)
	require.NoError(t, err)

	out := renderString(t, Detail(data))

	assert.NotContains(t, out, "<polyline")
	assert.Contains(t, out, `<circle cx="0" cy="40"`)
}

func TestNewDetailData_EmptySeries(t *testing.T) {
	_, err := NewDetailData(catalog.SourceDetail{NodeID: "x"}, testCanvas)
	assert.Error(t, err)
}

func TestPanelStyle(t *testing.T) {
	assert.Empty(t, panelStyle(Canvas{}))
	assert.Contains(t, panelStyle(Canvas{Width: 800, Height: 400}), "left: 50%")
}

func TestDashboard(t *testing.T) {
	r := newResolver()
	s := interaction.State{HoveredNode: catalog.NodeKafka}

	out := renderString(t, Dashboard(DashboardData{
		Title:    "Dashboard",
		Resolver: r,
		State:    s,
		Canvas:   testCanvas,
		Stats:    catalog.Stats(),
		Overlay:  catalog.Overlay(),
		Features: catalog.Features(),
	}))

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "<title>Dashboard - MeshX Foundation</title>")
	assert.Contains(t, out, "data-init")
	assert.Contains(t, out, LineageUpdatesPath)
	assert.Contains(t, out, `id="features"`)
	assert.Contains(t, out, `id="lineage"`)
	assert.Contains(t, out, `class="detail detail--empty"`)
	assert.Contains(t, out, "12.4M")
	assert.Contains(t, out, "3.8min")
	assert.Contains(t, out, "~3.8k events/sec")
}

func TestFeatures_HighlightLinkedNode(t *testing.T) {
	out := renderString(t, Features(catalog.Features(), interaction.State{HoveredNode: catalog.NodeREST}))

	rest := between(t, out, `data-node="rest-api"`, "</li>")
	assert.Contains(t, rest, "#c45a2d")
	assert.Contains(t, rest, "AI-READY: TRUE")
	sap := between(t, out, `data-node="sap-erp"`, "</li>")
	assert.NotContains(t, sap, "border-left: 2px solid #c45a2d")
	assert.Contains(t, sap, "width: 99.5%")
}

func TestScorecard_BlockerHighlightsDomain(t *testing.T) {
	out := renderString(t, Scorecard(ScorecardData{
		Domains:        catalog.Domains(),
		Blockers:       catalog.Blockers(),
		Overall:        catalog.OverallScore,
		HoveredBlocker: "01",
	}))

	assert.Equal(t, 1, strings.Count(out, `data-highlighted="true"`))
	hr := between(t, out, `data-domain="6"`, "</article>")
	assert.Contains(t, hr, "border: 1px solid #ff3344")
	assert.Contains(t, hr, `data-highlighted="true"`)
	assert.Contains(t, out, "HR &amp; WORKFORCE")
}

func TestScorecardPage(t *testing.T) {
	out := renderString(t, ScorecardPage(ScorecardData{
		Domains:  catalog.Domains(),
		Blockers: catalog.Blockers(),
		Overall:  catalog.OverallScore,
	}))

	assert.Contains(t, out, "<title>Scorecard - MeshX Foundation</title>")
	assert.NotContains(t, out, `data-highlighted="true"`)
	assert.Contains(t, out, ScorecardEventsPath)
}

func TestBadgeWidth(t *testing.T) {
	assert.Equal(t, 10.0, BadgeWidth(""))
	assert.Equal(t, 76.0, BadgeWidth("STATUS: LIVE"))
}

// between returns the text after the first occurrence of start up to the
// next occurrence of end.
func between(t *testing.T, s, start, end string) string {
	t.Helper()
	i := strings.Index(s, start)
	require.GreaterOrEqual(t, i, 0, "missing %q", start)
	rest := s[i:]
	j := strings.Index(rest, end)
	require.GreaterOrEqual(t, j, 0, "missing %q after %q", end, start)
	return rest[:j]
}
