package emphasis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForScore(t *testing.T) {
	tests := []struct {
		score int
		want  Emphasis
	}{
		{100, Success},
		{80, Success},
		{79, Warning},
		{50, Warning},
		{49, Danger},
		{0, Danger},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ForScore(tt.score), "score %d", tt.score)
	}
}

func TestForSeverity(t *testing.T) {
	assert.Equal(t, Danger, ForSeverity("CRITICAL"))
	assert.Equal(t, Warning, ForSeverity("HIGH"))
	assert.Equal(t, Warning, ForSeverity("MEDIUM"))
}

func TestForSLA(t *testing.T) {
	assert.Equal(t, Success, ForSLA("ON-TIME"))
	assert.Equal(t, Danger, ForSLA("BREACHED"))
}

func TestForStatus(t *testing.T) {
	assert.Equal(t, Success, ForStatus("READY"))
	assert.Equal(t, Warning, ForStatus("ATTENTION"))
	assert.Equal(t, Danger, ForStatus("BLOCKED"))
	assert.Equal(t, Neutral, ForStatus("UNKNOWN"))
}

func TestSwatch(t *testing.T) {
	assert.Equal(t, "#c45a2d", Accent.Color())
	assert.Equal(t, "#ff3344", Danger.Border())
	assert.Equal(t, Neutral.Swatch(), Emphasis(42).Swatch(), "out of range falls back to neutral")
}

func TestParse(t *testing.T) {
	for _, e := range []Emphasis{Neutral, Accent, Success, Warning, Danger, Muted} {
		got, err := Parse(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	_, err := Parse("loud")
	assert.Error(t, err)
	assert.Equal(t, "emphasis(9)", Emphasis(9).String())
}
