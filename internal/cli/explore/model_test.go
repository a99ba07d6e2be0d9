package explore

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/cli/output"
	"github.com/meshx-labs/meshx/internal/interaction"
	"github.com/meshx-labs/meshx/internal/render"
)

func newModel(t *testing.T) Model {
	t.Helper()
	session := interaction.NewSession(render.NewResolver(catalog.Graph()))
	return New(session, output.NewStyles(lipgloss.NewRenderer(io.Discard)))
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

var (
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_HoversFirstNode(t *testing.T) {
	m := newModel(t)
	assert.Equal(t, catalog.NodeSAP, m.Focused())
	assert.Equal(t, interaction.State{HoveredNode: catalog.NodeSAP}, m.State())
}

func TestMove(t *testing.T) {
	tests := []struct {
		name    string
		keys    []tea.KeyMsg
		focused string
		state   interaction.State
	}{
		{
			name:    "down moves hover",
			keys:    []tea.KeyMsg{down},
			focused: catalog.NodeKafka,
			state:   interaction.State{HoveredNode: catalog.NodeKafka},
		},
		{
			name:    "vim keys",
			keys:    []tea.KeyMsg{runes("j"), runes("j"), runes("k")},
			focused: catalog.NodeKafka,
			state:   interaction.State{HoveredNode: catalog.NodeKafka},
		},
		{
			name:    "up wraps to last edge",
			keys:    []tea.KeyMsg{up},
			focused: "e4",
			state:   interaction.State{HoveredEdge: "e4"},
		},
		{
			name:    "down back to start",
			keys:    []tea.KeyMsg{up, down},
			focused: catalog.NodeSAP,
			state:   interaction.State{HoveredNode: catalog.NodeSAP},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(t, newModel(t), tt.keys...)
			assert.Equal(t, tt.focused, m.Focused())
			assert.Equal(t, tt.state, m.State())
		})
	}
}

func TestSelect(t *testing.T) {
	m := press(t, newModel(t), down, enter)
	assert.Equal(t, catalog.NodeKafka, m.State().Selected)

	view := m.View()
	assert.Contains(t, view, "[selected]")
	assert.Contains(t, view, "Jonas Weber")

	// Selection survives moving the hover away.
	m = press(t, m, down)
	assert.Equal(t, catalog.NodeKafka, m.State().Selected)
	assert.Equal(t, catalog.NodeREST, m.State().HoveredNode)

	m = press(t, m, esc)
	assert.Empty(t, m.State().Selected)
	assert.NotContains(t, m.View(), "Jonas Weber")
}

func TestSelect_ToggleAndPressOutside(t *testing.T) {
	m := press(t, newModel(t), enter)
	assert.Equal(t, catalog.NodeSAP, m.State().Selected)

	m = press(t, m, enter)
	assert.Empty(t, m.State().Selected, "second select toggles off")

	m = press(t, m, enter, runes("x"))
	assert.Empty(t, m.State().Selected)
}

func TestSelect_IgnoresNonSources(t *testing.T) {
	m := press(t, newModel(t), down, down, down, enter)
	assert.Equal(t, catalog.NodeEngine, m.Focused())
	assert.Empty(t, m.State().Selected)
}

func TestSelect_NonSourceClearsSelection(t *testing.T) {
	m := press(t, newModel(t), enter)
	require.Equal(t, catalog.NodeSAP, m.State().Selected)

	m = press(t, m, down, down, down, enter)
	assert.Equal(t, catalog.NodeEngine, m.Focused())
	assert.Empty(t, m.State().Selected)
}

func TestView_ActiveEdgeLabels(t *testing.T) {
	m := newModel(t)
	view := m.View()

	// Hovering SAP activates e1 only.
	assert.Contains(t, view, "~2.1k events/sec")
	assert.NotContains(t, view, "~3.8k events/sec")
	assert.Contains(t, view, "> ")
}

func TestQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := newModel(t).Update(k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestHelpToggle(t *testing.T) {
	m := newModel(t)
	assert.NotContains(t, m.View(), "press outside")

	m = press(t, m, runes("?"))
	assert.Contains(t, m.View(), "press outside")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "▁█", bar([]float64{1, 2}))
	assert.Equal(t, "▁▁▁", bar([]float64{5, 5, 5}))
	assert.Equal(t, "▁", bar([]float64{0}))
	assert.Empty(t, bar(nil))
}
