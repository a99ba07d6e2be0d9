package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/emphasis"
)

// ScorecardData is the input of the scorecard screen.
type ScorecardData struct {
	Domains  []catalog.Domain
	Blockers []catalog.Blocker
	Overall  int
	// HoveredBlocker is the id of the blocker under the pointer, or "".
	HoveredBlocker string
}

// ScorecardPage paints the full scorecard document.
func ScorecardPage(data ScorecardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		writeHead(hw, "Scorecard")
		hw.printf(`<body data-signals="%s">`, esc(`{blocker: ""}`))
		if hw.err == nil {
			hw.err = Scorecard(data).Render(ctx, w)
		}
		hw.raw(`</body></html>`)
		return hw.err
	})
}

// Scorecard paints the readiness grid and the blocker list. The domain of
// the hovered blocker is outlined with the blocker's severity color.
func Scorecard(data ScorecardData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		overall := emphasis.ForScore(data.Overall)

		hw.printf(`<main id="%s" class="scorecard">`, ScorecardID)
		hw.printf(`<header class="scorecard__overall">AI READINESS <span style="color: %s">%d</span>/100</header>`,
			overall.Color(), data.Overall)

		hw.raw(`<div class="scorecard__grid">`)
		for _, d := range data.Domains {
			writeDomain(hw, d, data.HoveredBlocker)
		}
		hw.raw(`</div>`)

		hw.raw(`<ul class="blockers">`)
		for _, b := range data.Blockers {
			sev := b.Emphasis()
			hw.printf(`<li class="blocker" data-blocker="%s" data-on:mouseenter="%s" data-on:mouseleave="%s">`,
				esc(b.ID),
				esc(post(ScorecardEventsPath, set("blocker", b.ID))),
				esc(post(ScorecardEventsPath, set("blocker", ""))))
			hw.printf(`<span class="badge" style="border-color: %s; color: %s">`, sev.Border(), sev.Color())
			hw.text(b.Severity)
			hw.raw(`</span> `)
			hw.text(b.Message)
			hw.raw(`</li>`)
		}
		hw.raw(`</ul></main>`)
		return hw.err
	})
}

func writeDomain(hw *htmlWriter, d catalog.Domain, hoveredBlocker string) {
	border := emphasis.Neutral
	highlighted := false
	if e, ok := catalog.Highlight(d.ID, hoveredBlocker); ok {
		border, highlighted = e, true
	}
	score := d.Emphasis()
	status := emphasis.ForStatus(d.Status)

	hw.printf(`<article class="domain" data-domain="%d" data-highlighted="%t" style="border: 1px solid %s">`,
		d.ID, highlighted, border.Border())
	hw.raw(`<h3>`)
	hw.text(d.Name)
	hw.printf(`</h3><span class="badge" style="border-color: %s; color: %s">`, status.Border(), status.Color())
	hw.text(d.Status)
	hw.printf(`</span><div class="domain__score" style="color: %s">%d</div>`, score.Color(), d.Score)

	hw.raw(`<dl class="domain__metrics">`)
	for _, m := range d.Metrics() {
		me := emphasis.ForScore(m.Value)
		hw.raw(`<dt>`)
		hw.text(m.Label)
		hw.printf(`</dt><dd style="color: %s">%d</dd>`, me.Color(), m.Value)
	}
	hw.raw(`</dl>`)
	hw.raw(`<footer>`)
	hw.text(strconv.Itoa(d.Products) + " PRODUCTS · " + strconv.Itoa(d.Consumers) + " CONSUMERS")
	hw.raw(`</footer></article>`)
}
