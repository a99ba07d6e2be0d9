// Package explore is the keyboard-driven terminal explorer of the lineage
// graph. Moving the cursor hovers, enter selects, and the same resolver
// that backs the dashboard decides what lights up.
package explore

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/cli/output"
	"github.com/meshx-labs/meshx/internal/emphasis"
	"github.com/meshx-labs/meshx/internal/interaction"
	"github.com/meshx-labs/meshx/internal/lineage"
	"github.com/meshx-labs/meshx/internal/sparkline"
)

// outside is a press location no panel or node covers.
var outside = lineage.Point{X: -1, Y: -1}

var bars = []rune("▁▂▃▄▅▆▇█")

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
	Press  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Close, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Select, k.Close, k.Press},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j", "tab"),
		key.WithHelp("↓/j", "next"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close panel"),
	),
	Press: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "press outside"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// item is one focusable row: a node or an edge.
type item struct {
	edge bool
	id   string
}

// Model is the bubbletea model of the explorer.
type Model struct {
	session *interaction.Session
	styles  *output.Styles
	items   []item
	cursor  int
	help    help.Model
}

// New creates an explorer over session. The first node starts hovered.
func New(session *interaction.Session, styles *output.Styles) Model {
	g := session.Resolver().Graph()
	var items []item
	for _, n := range g.Nodes() {
		items = append(items, item{id: n.ID})
	}
	for _, e := range g.Edges() {
		items = append(items, item{edge: true, id: e.ID})
	}

	m := Model{session: session, styles: styles, items: items, help: help.New()}
	m.enter()
	return m
}

// State returns the interaction state shown by the model.
func (m Model) State() interaction.State {
	return m.session.Snapshot()
}

// Focused returns the id under the cursor.
func (m Model) Focused() string {
	if len(m.items) == 0 {
		return ""
	}
	return m.items[m.cursor].id
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.move(-1)
		case key.Matches(msg, keys.Down):
			m.move(1)
		case key.Matches(msg, keys.Select):
			if it, ok := m.current(); ok && !it.edge {
				m.session.Dispatch(interaction.NodeClick{ID: it.id})
			}
		case key.Matches(msg, keys.Close):
			m.session.Dispatch(interaction.Close{})
		case key.Matches(msg, keys.Press):
			m.session.Dispatch(interaction.PointerDown{At: outside})
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *Model) current() (item, bool) {
	if len(m.items) == 0 {
		return item{}, false
	}
	return m.items[m.cursor], true
}

// move shifts the cursor, leaving the old row before entering the new one.
func (m *Model) move(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.leave()
	m.cursor = (m.cursor + delta + len(m.items)) % len(m.items)
	m.enter()
}

func (m *Model) enter() {
	if it, ok := m.current(); ok {
		if it.edge {
			m.session.Dispatch(interaction.EdgeEnter{ID: it.id})
		} else {
			m.session.Dispatch(interaction.NodeEnter{ID: it.id})
		}
	}
}

func (m *Model) leave() {
	if it, ok := m.current(); ok {
		if it.edge {
			m.session.Dispatch(interaction.EdgeLeave{ID: it.id})
		} else {
			m.session.Dispatch(interaction.NodeLeave{ID: it.id})
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	r, s := m.session.View()
	g := r.Graph()
	st := m.styles

	var b strings.Builder
	b.WriteString(st.Header1.Render("MeshX lineage explorer"))
	b.WriteString("\n\n")

	b.WriteString(st.Header2.Render("Nodes"))
	b.WriteString("\n")
	for i, it := range m.items {
		if it.edge {
			continue
		}
		n := g.MustNode(it.id)
		style := st.Emphasis(emphasis.Neutral)
		if r.NodeEmphasized(s, n) {
			style = st.Emphasis(emphasis.Accent)
		}
		line := fmt.Sprintf("%-18s %-10s", n.Name, n.Category)
		if s.NodeSelected(n) {
			line += " [selected]"
			style = style.Bold(true)
		}
		b.WriteString(m.cursorMark(i) + style.Render(line) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(st.Header2.Render("Edges"))
	b.WriteString("\n")
	for i, it := range m.items {
		if !it.edge {
			continue
		}
		e := g.MustEdge(it.id)
		line := fmt.Sprintf("%-3s %s → %s", e.ID, e.From, e.To)
		if s.EdgeActive(e) {
			if e.Label != "" {
				line += "  " + e.Label
			}
			b.WriteString(m.cursorMark(i) + st.Emphasis(emphasis.Accent).Render(line) + "\n")
			continue
		}
		b.WriteString(m.cursorMark(i) + st.Muted.Render(line) + "\n")
	}

	if d, ok := catalog.Detail(s.Selected); ok {
		b.WriteString("\n")
		b.WriteString(detailView(st, d))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) cursorMark(i int) string {
	if i == m.cursor {
		return m.styles.NodeID.Render("> ")
	}
	return "  "
}

func detailView(st *output.Styles, d catalog.SourceDetail) string {
	var b strings.Builder
	b.WriteString(st.Header2.Render(d.System))
	b.WriteString("\n")
	for _, f := range [][2]string{
		{"OWNER", d.Owner},
		{"TEAM", d.Team},
		{"LAST SYNC", d.LastSync},
		{"RECORDS", d.Records},
		{"UPTIME", fmt.Sprintf("%.1f%%", d.Uptime)},
	} {
		fmt.Fprintf(&b, "  %s %s\n", st.Muted.Render(fmt.Sprintf("%-10s", f[0])), f[1])
	}
	fmt.Fprintf(&b, "  %s %s\n", st.Muted.Render(fmt.Sprintf("%-10s", "SLA")), st.Emphasis(emphasis.ForSLA(d.SLA)).Render(d.SLA))
	fmt.Fprintf(&b, "  %s %s\n", st.Muted.Render(fmt.Sprintf("%-10s", "VOLUME")), st.Emphasis(emphasis.Accent).Render(bar(d.Volume)))
	return b.String()
}

// bar draws series as block characters, projecting it onto one cell per
// sample and len(bars)-1 levels.
func bar(series []float64) string {
	if len(series) == 0 {
		return ""
	}
	levels := float64(len(bars) - 1)
	points, err := sparkline.Project(series, float64(len(series)-1), levels)
	if err != nil {
		return ""
	}
	out := make([]rune, len(points))
	for i, p := range points {
		out[i] = bars[int(math.Round(levels-p.Y))]
	}
	return string(out)
}
