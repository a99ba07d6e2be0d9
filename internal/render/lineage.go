package render

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/meshx-labs/meshx/internal/emphasis"
	"github.com/meshx-labs/meshx/internal/interaction"
	"github.com/meshx-labs/meshx/internal/lineage"
)

// Tooltip geometry around an edge midpoint.
const (
	tooltipWidth  = 110
	tooltipHeight = 18
	tooltipBase   = 6
	hitAreaWidth  = interaction.DefaultEdgeTolerance * 2
)

// Canvas is the virtual drawing area of the lineage graph.
type Canvas struct {
	Width  float64
	Height float64
}

// LineageOptions controls how the graph is painted.
type LineageOptions struct {
	Canvas Canvas
	// Interactive adds the datastar pointer bindings.
	Interactive bool
}

// Lineage paints the graph for state s. Edges are painted first so nodes
// cover their endpoints.
func Lineage(r *interaction.Resolver, s interaction.State, opts LineageOptions) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		writeLineage(hw, r, s, opts)
		return hw.err
	})
}

func writeLineage(hw *htmlWriter, r *interaction.Resolver, s interaction.State, opts LineageOptions) {
	g := r.Graph()
	hw.printf(`<svg id="%s" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" style="font-family: %s; width: 100%%; height: 100%%">`,
		LineageID, num(opts.Canvas.Width), num(opts.Canvas.Height), esc(fontStack))

	hw.printf(`<rect class="canvas" x="0" y="0" width="%s" height="%s" fill="%s"`,
		num(opts.Canvas.Width), num(opts.Canvas.Height), colorBackground)
	if opts.Interactive {
		hw.printf(` data-on:click="%s"`, esc(pointerDownExpr))
	}
	hw.raw(`/>`)

	for _, e := range g.Edges() {
		writeEdge(hw, g, e, s.EdgeActive(e), opts.Interactive)
	}
	for _, n := range g.Nodes() {
		writeNode(hw, r, n, s, opts.Interactive)
	}
	hw.raw(`</svg>`)
}

// pointerDownExpr converts the click position to canvas coordinates before
// posting, so the server compares it against node and panel bounds.
const pointerDownExpr = `const p = new DOMPoint(evt.clientX, evt.clientY).matrixTransform(el.ownerSVGElement.getScreenCTM().inverse()); ` +
	`$kind = "pointer-down"; $x = p.x; $y = p.y; @post('` + LineageEventsPath + `')`

func writeEdge(hw *htmlWriter, g *lineage.Graph, e lineage.Edge, active, interactive bool) {
	d := g.EdgePath(e).String()
	stroke, width := colorEdge, 1.0
	if active {
		stroke, width = emphasis.Accent.Border(), 1.5
	}

	hw.printf(`<g class="edge" data-edge="%s">`, esc(e.ID))
	hw.printf(`<path d="%s" fill="none" stroke="%s" stroke-width="%s"/>`, d, stroke, num(width))
	hw.printf(`<path class="edge-hit-area" d="%s" fill="none" stroke="transparent" stroke-width="%d"`, d, hitAreaWidth)
	if interactive {
		hw.printf(` data-on:mouseenter="%s" data-on:mouseleave="%s" data-on:click="%s"`,
			esc(post(LineageEventsPath, set("kind", interaction.KindEdgeEnter), set("edge", e.ID))),
			esc(post(LineageEventsPath, set("kind", interaction.KindEdgeLeave), set("edge", e.ID))),
			esc(pointerDownExpr))
	}
	hw.raw(`/>`)

	if active {
		mid := g.EdgeMidpoint(e)
		hw.printf(`<g class="edge-tooltip"><rect x="%s" y="%s" width="%d" height="%d" fill="%s" fill-opacity="0.95"/>`,
			num(mid.X-tooltipWidth/2), num(mid.Y-tooltipHeight), tooltipWidth, tooltipHeight, colorBackground)
		hw.printf(`<text x="%s" y="%s" text-anchor="middle" fill="%s" font-size="9" letter-spacing="0.05em">`,
			num(mid.X), num(mid.Y-tooltipBase), emphasis.Accent.Color())
		hw.text(e.Label)
		hw.raw(`</text></g>`)
	}
	hw.raw(`</g>`)
}

func writeNode(hw *htmlWriter, r *interaction.Resolver, n lineage.Node, s interaction.State, interactive bool) {
	g := r.Graph()
	b := g.Bounds(n.ID)
	emphasized := r.NodeEmphasized(s, n)

	border, name, label := emphasis.Neutral.Border(), colorSecondary, emphasis.Muted.Color()
	if emphasized {
		border, name, label = emphasis.Accent.Border(), colorForeground, emphasis.Accent.Color()
	}

	hw.printf(`<g class="node node--%s" data-node="%s"`, esc(string(n.Category)), esc(n.ID))
	if interactive {
		hw.printf(` data-on:mouseenter="%s" data-on:mouseleave="%s" data-on:click="%s"`,
			esc(post(LineageEventsPath, set("kind", interaction.KindNodeEnter), set("node", n.ID))),
			esc(post(LineageEventsPath, set("kind", interaction.KindNodeLeave), set("node", n.ID))),
			esc(post(LineageEventsPath, set("kind", interaction.KindNodeClick), set("node", n.ID))))
		if r.Selectable(n) {
			hw.raw(` style="cursor: pointer"`)
		}
	}
	hw.raw(`>`)

	hw.printf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="0.5"/>`,
		num(b.X), num(b.Y), num(b.Width), num(b.Height), colorSurface, border)

	hw.printf(`<text x="%s" y="%s" fill="%s" font-size="10" font-weight="700" letter-spacing="0.08em">`,
		num(b.X+10), num(b.Y+18), name)
	hw.text(n.Name)
	hw.raw(`</text>`)

	hw.printf(`<text x="%s" y="%s" fill="%s" font-size="8" letter-spacing="0.1em">`,
		num(b.X+10), num(b.Y+34), label)
	hw.text(n.Label)
	hw.raw(`</text>`)

	if n.Badge != "" {
		badge := emphasis.Neutral
		badgeText := emphasis.Muted.Color()
		if n.Category == lineage.CategoryOutput {
			badge = emphasis.Accent
			badgeText = emphasis.Accent.Color()
		}
		hw.printf(`<rect x="%s" y="%s" width="%s" height="14" fill="none" stroke="%s" stroke-width="0.5"/>`,
			num(b.X+9), num(b.Y+44), num(BadgeWidth(n.Badge)), badge.Border())
		hw.printf(`<text x="%s" y="%s" fill="%s" font-size="7" letter-spacing="0.08em">`,
			num(b.X+14), num(b.Y+54), badgeText)
		hw.text(n.Badge)
		hw.raw(`</text>`)
	}

	if n.Category == lineage.CategoryTransform {
		hw.printf(`<circle class="status-dot" cx="%s" cy="%s" r="3" fill="%s"/>`,
			num(b.X+b.Width-12), num(b.Y+14), emphasis.Success.Color())
	}
	hw.raw(`</g>`)
}

// BadgeWidth is the width of the box drawn around a node badge.
func BadgeWidth(badge string) float64 {
	return float64(len(badge))*5.5 + 10
}
