// Package render paints the MeshX screens as templ components.
//
// Every component is a pure function of its inputs: the lineage graph, an
// interaction.State snapshot and catalog data. Interactive components carry
// datastar attributes that post pointer events back to the UI server; the
// same components render without them for static export.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Routes the interactive components talk to.
const (
	LineageEventsPath   = "/lineage/events"
	LineageUpdatesPath  = "/lineage/updates"
	ScorecardEventsPath = "/scorecard/events"
)

// Element ids patched over SSE.
const (
	LineageID   = "lineage"
	DetailID    = "detail"
	FeaturesID  = "features"
	ScorecardID = "scorecard"
)

// Palette entries that are not emphasis levels.
const (
	colorBackground = "#050505"
	colorSurface    = "#0a0a0a"
	colorForeground = "#e5e5e5"
	colorSecondary  = "#777"
	colorEdge       = "rgba(255, 255, 255, 0.15)"
	fontStack       = "'JetBrains Mono', monospace"
)

// htmlWriter writes markup and remembers the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) printf(format string, args ...any) {
	if hw.err != nil {
		return
	}
	_, hw.err = fmt.Fprintf(hw.w, format, args...)
}

// text writes s escaped for element content or attribute values.
func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

// num formats canvas coordinates without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// esc is templ.EscapeString, shortened for printf-heavy code.
func esc(s string) string {
	return templ.EscapeString(s)
}

// post builds a datastar expression that sets signals then posts them.
// Values are JavaScript literals.
func post(path string, assigns ...string) string {
	var b strings.Builder
	for _, a := range assigns {
		b.WriteString(a)
		b.WriteString("; ")
	}
	b.WriteString("@post('")
	b.WriteString(path)
	b.WriteString("')")
	return b.String()
}

// set returns a signal assignment with a quoted string value.
func set(signal, value string) string {
	return "$" + signal + " = " + strconv.Quote(value)
}
