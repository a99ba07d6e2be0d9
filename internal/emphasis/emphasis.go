// Package emphasis maps visual emphasis levels to the MeshX color table.
package emphasis

import "fmt"

// Emphasis is the single styling variant used by every badge, border and
// label in the UI.
type Emphasis int

// Emphasis levels.
const (
	Neutral Emphasis = iota
	Accent
	Success
	Warning
	Danger
	Muted
)

// Swatch is the pair of colors applied for an emphasis level.
type Swatch struct {
	Border string
	Text   string
}

var swatches = [...]Swatch{
	Neutral: {Border: "rgba(255, 255, 255, 0.1)", Text: "#999"},
	Accent:  {Border: "#c45a2d", Text: "#c45a2d"},
	Success: {Border: "#00ff41", Text: "#00ff41"},
	Warning: {Border: "#d4a017", Text: "#d4a017"},
	Danger:  {Border: "#ff3344", Text: "#ff3344"},
	Muted:   {Border: "rgba(255, 255, 255, 0.05)", Text: "#444"},
}

var names = [...]string{
	Neutral: "neutral",
	Accent:  "accent",
	Success: "success",
	Warning: "warning",
	Danger:  "danger",
	Muted:   "muted",
}

// Swatch returns the colors for e. Unknown values fall back to Neutral.
func (e Emphasis) Swatch() Swatch {
	if e < Neutral || int(e) >= len(swatches) {
		return swatches[Neutral]
	}
	return swatches[e]
}

// Color returns the text color for e.
func (e Emphasis) Color() string { return e.Swatch().Text }

// Border returns the border color for e.
func (e Emphasis) Border() string { return e.Swatch().Border }

func (e Emphasis) String() string {
	if e < Neutral || int(e) >= len(names) {
		return fmt.Sprintf("emphasis(%d)", int(e))
	}
	return names[e]
}

// Parse converts a name produced by String back into an Emphasis.
func Parse(s string) (Emphasis, error) {
	for i, n := range names {
		if n == s {
			return Emphasis(i), nil
		}
	}
	return Neutral, fmt.Errorf("unknown emphasis %q", s)
}

// Readiness thresholds for ForScore.
const (
	ReadyScore     = 80
	AttentionScore = 50
)

// ForScore classifies a 0-100 readiness score.
func ForScore(score int) Emphasis {
	switch {
	case score >= ReadyScore:
		return Success
	case score >= AttentionScore:
		return Warning
	default:
		return Danger
	}
}

// ForSeverity classifies a blocker severity. Only CRITICAL is Danger.
func ForSeverity(severity string) Emphasis {
	if severity == "CRITICAL" {
		return Danger
	}
	return Warning
}

// ForSLA classifies a source SLA status.
func ForSLA(status string) Emphasis {
	if status == "ON-TIME" {
		return Success
	}
	return Danger
}

// ForStatus classifies a domain status badge.
func ForStatus(status string) Emphasis {
	switch status {
	case "READY":
		return Success
	case "ATTENTION":
		return Warning
	case "BLOCKED":
		return Danger
	default:
		return Neutral
	}
}
