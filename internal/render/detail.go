package render

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/emphasis"
	"github.com/meshx-labs/meshx/internal/interaction"
	"github.com/meshx-labs/meshx/internal/lineage"
	"github.com/meshx-labs/meshx/internal/sparkline"
)

// Sparkline plot size inside the detail panel.
const (
	SparklineWidth  = 200
	SparklineHeight = 40
)

// PanelBounds is where the detail panel overlays the lineage canvas, in
// canvas coordinates. The resolver publishes the same rectangle so presses
// inside the panel never clear the selection.
var PanelBounds = lineage.Rect{X: 400, Y: 222, Width: 212, Height: 140}

// NewResolver binds g to the dashboard layout: sources with a detail
// record are selectable and the detail panel publishes PanelBounds.
func NewResolver(g *lineage.Graph) *interaction.Resolver {
	return interaction.NewResolver(g,
		interaction.WithSelectable(catalog.HasDetail),
		interaction.WithPanelBounds(PanelBounds))
}

// DetailData is everything the detail panel shows for a selected source.
type DetailData struct {
	Detail catalog.SourceDetail
	Points []sparkline.Point
	Canvas Canvas
}

// NewDetailData projects the volume series of d for the panel sparkline.
func NewDetailData(d catalog.SourceDetail, canvas Canvas) (DetailData, error) {
	points, err := sparkline.Project(d.Volume, SparklineWidth, SparklineHeight)
	if err != nil {
		return DetailData{}, fmt.Errorf("project %s volume: %w", d.NodeID, err)
	}
	return DetailData{Detail: d, Points: points, Canvas: canvas}, nil
}

// EmptyDetail is the placeholder patched in when nothing is selected.
func EmptyDetail() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="%s" class="detail detail--empty"></div>`, DetailID)
		return err
	})
}

// Detail paints the panel for a selected source node.
func Detail(data DetailData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		writeDetail(hw, data)
		return hw.err
	})
}

func writeDetail(hw *htmlWriter, data DetailData) {
	d := data.Detail
	sla := emphasis.ForSLA(d.SLA)

	hw.printf(`<div id="%s" class="detail" style="%s">`, DetailID, esc(panelStyle(data.Canvas)))
	hw.raw(`<div class="detail__header"><span class="detail__system">`)
	hw.text(d.System)
	hw.printf(`</span><button class="detail__close" data-on:click="%s">&times;</button></div>`,
		esc(post(LineageEventsPath, set("kind", interaction.KindClose))))

	hw.raw(`<dl class="detail__fields">`)
	for _, f := range [][2]string{
		{"OWNER", d.Owner},
		{"TEAM", d.Team},
		{"LAST SYNC", d.LastSync},
		{"RECORDS", d.Records},
		{"UPTIME", fmt.Sprintf("%.1f%%", d.Uptime)},
	} {
		hw.raw(`<dt>`)
		hw.text(f[0])
		hw.raw(`</dt><dd>`)
		hw.text(f[1])
		hw.raw(`</dd>`)
	}
	hw.raw(`</dl>`)

	hw.printf(`<span class="badge badge--%s" style="border-color: %s; color: %s">SLA: `, sla, sla.Border(), sla.Color())
	hw.text(d.SLA)
	hw.raw(`</span>`)

	writeSparkline(hw, data.Points)
	hw.raw(`</div>`)
}

func writeSparkline(hw *htmlWriter, points []sparkline.Point) {
	hw.printf(`<svg class="sparkline" viewBox="0 0 %d %d" preserveAspectRatio="none">`, SparklineWidth, SparklineHeight)
	if sparkline.CanDrawLine(points) {
		hw.printf(`<polyline points="%s" fill="none" stroke="%s" stroke-width="1.5"/>`,
			sparkline.Polyline(points), emphasis.Accent.Color())
	}
	if last, ok := sparkline.Last(points); ok {
		hw.printf(`<circle cx="%s" cy="%s" r="2.5" fill="%s"/>`, num(last.X), num(last.Y), emphasis.Accent.Color())
	}
	hw.raw(`</svg>`)
}

// panelStyle positions the panel over the canvas using percentages, so it
// tracks PanelBounds whatever size the SVG is scaled to.
func panelStyle(c Canvas) string {
	if c.Width <= 0 || c.Height <= 0 {
		return ""
	}
	pct := func(v, of float64) string { return num(v/of*100) + "%" }
	return "position: absolute; left: " + pct(PanelBounds.X, c.Width) +
		"; top: " + pct(PanelBounds.Y, c.Height) +
		"; width: " + pct(PanelBounds.Width, c.Width) +
		"; height: " + pct(PanelBounds.Height, c.Height)
}
