package render

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/emphasis"
	"github.com/meshx-labs/meshx/internal/interaction"
	"github.com/meshx-labs/meshx/internal/ui/resources"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// DashboardData is the input of the dashboard page.
type DashboardData struct {
	Title    string
	Resolver *interaction.Resolver
	State    interaction.State
	Canvas   Canvas
	Stats    []catalog.Stat
	Overlay  []catalog.Stat
	Features []catalog.Feature
	// Detail is nil when nothing is selected.
	Detail *DetailData
}

// Dashboard paints the full dashboard document.
func Dashboard(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		writeHead(hw, data.Title)

		// Presses outside the lineage section carry an off-canvas position.
		hw.printf(`<body data-signals="%s" data-init="%s">`,
			esc(`{kind: "", node: "", edge: "", x: 0, y: 0}`),
			esc("@get('"+LineageUpdatesPath+"')"))
		hw.raw(`<main class="dashboard">`)

		hw.printf(`<section class="dashboard__left" data-on:click="%s">`,
			esc(`$kind = "pointer-down"; $x = -1; $y = -1; @post('`+LineageEventsPath+`')`))
		writeStats(hw, data.Stats)
		if hw.err == nil {
			hw.err = Features(data.Features, data.State).Render(ctx, w)
		}
		hw.raw(`</section>`)

		hw.raw(`<section class="dashboard__right"><div class="lineage-header">LINEAGE: LIVE <span class="pulse"></span></div>`)
		hw.raw(`<div class="lineage-canvas" style="position: relative">`)
		writeLineage(hw, data.Resolver, data.State, LineageOptions{Canvas: data.Canvas, Interactive: true})
		if data.Detail != nil {
			writeDetail(hw, *data.Detail)
		} else if hw.err == nil {
			hw.err = EmptyDetail().Render(ctx, w)
		}
		writeOverlay(hw, data.Overlay)
		hw.raw(`</div></section>`)

		hw.raw(`</main></body></html>`)
		return hw.err
	})
}

func writeHead(hw *htmlWriter, title string) {
	hw.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
	hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	hw.raw(`<title>`)
	hw.text(title)
	hw.raw(` - MeshX Foundation</title>`)
	hw.printf(`<script type="module" src="%s"></script>`, datastarScript)
	hw.printf(`<link rel="stylesheet" href="%s">`, resources.StaticPath(resources.Stylesheet))
	hw.printf(`<style>body { background: %s; color: %s; font-family: %s; margin: 0 }</style>`,
		colorBackground, colorForeground, fontStack)
	hw.raw(`</head>`)
}

func writeStats(hw *htmlWriter, stats []catalog.Stat) {
	hw.raw(`<div class="stats">`)
	for _, s := range stats {
		hw.raw(`<div class="stat"><span class="stat__label">`)
		hw.text(s.Label)
		hw.raw(`</span><span class="stat__value">`)
		hw.text(s.Value)
		hw.raw(`</span></div>`)
	}
	hw.raw(`</div>`)
}

func writeOverlay(hw *htmlWriter, stats []catalog.Stat) {
	hw.printf(`<div class="lineage-overlay" style="position: absolute; right: 1.5rem; top: 1rem; text-align: right; color: %s">`, colorSecondary)
	for _, s := range stats {
		hw.raw(`<div>`)
		hw.text(s.Label)
		hw.printf(`: <span style="color: %s">`, colorForeground)
		hw.text(s.Value)
		hw.raw(`</span></div>`)
	}
	hw.raw(`</div>`)
}

// Features paints the feature list. A feature is highlighted while its
// linked node is hovered, and hovering a feature hovers that node.
func Features(features []catalog.Feature, s interaction.State) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.printf(`<ol id="%s" class="features">`, FeaturesID)
		for _, f := range features {
			border := emphasis.Muted
			if s.HoveredNode == f.NodeID {
				border = emphasis.Accent
			}
			hw.printf(`<li class="feature" data-node="%s" style="border-left: 2px solid %s" data-on:mouseenter="%s" data-on:mouseleave="%s">`,
				esc(f.NodeID), border.Border(),
				esc(post(LineageEventsPath, set("kind", interaction.KindNodeEnter), set("node", f.NodeID))),
				esc(post(LineageEventsPath, set("kind", interaction.KindNodeLeave), set("node", f.NodeID))))
			hw.raw(`<span class="feature__num">`)
			hw.text(f.Number)
			hw.raw(`</span><h3>`)
			hw.text(f.Title)
			hw.raw(`</h3><p>`)
			hw.text(f.Description)
			hw.raw(`</p>`)
			if f.HasProgress() {
				hw.printf(`<div class="progress"><div class="progress__bar" style="width: %s%%; background: %s"></div></div>`,
					num(f.Progress), emphasis.Success.Color())
			}
			if f.Badge != "" {
				hw.printf(`<span class="badge badge--%s" style="border-color: %s; color: %s">`,
					f.BadgeEmphasis, f.BadgeEmphasis.Border(), f.BadgeEmphasis.Color())
				hw.text(f.Badge)
				hw.raw(`</span>`)
			}
			hw.raw(`</li>`)
		}
		hw.raw(`</ol>`)
		return hw.err
	})
}
