package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshx-labs/meshx/internal/cli/output"
	"github.com/meshx-labs/meshx/internal/lineage"
)

// NewGraphCommand creates the graph command.
func NewGraphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "graph",
		Aliases: []string{"dag"},
		Short:   "Show the lineage graph",
		Long: `Display the lineage graph: nodes with their positions, edges with
their anchors and connector paths, and the flow grouped by level.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format (agent-friendly)`,
		Example: `  # Show the built-in graph
  meshx graph

  # Show a graph file as JSON
  meshx graph --graph lineage.yaml --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGraph(cmd)
		},
	}

	return cmd
}

func runGraph(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	g, err := cmdCtx.LoadGraph()
	if err != nil {
		return err
	}

	levels, err := g.Flow().Levels()
	if err != nil {
		return fmt.Errorf("failed to get flow levels: %w", err)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(graphOutput(g, levels))
	case output.ModeMarkdown:
		return graphMarkdown(r, g, levels)
	default:
		return graphText(r, g, levels)
	}
}

// graphText outputs the graph in styled text format.
func graphText(r *output.Renderer, g *lineage.Graph, levels [][]string) error {
	styles := r.Styles()

	r.Header(1, "Lineage Graph")
	r.Table(nodeTable(g))
	r.Println("")
	r.Table(edgeTable(g))
	r.Println("")

	r.Println(styles.Header2.Render("Flow"))
	for i, level := range levels {
		ids := make([]string, len(level))
		for j, id := range level {
			ids[j] = styles.NodeID.Render(id)
		}
		r.Printf("  %s %s\n", styles.Muted.Render(fmt.Sprintf("level %d:", i)), strings.Join(ids, ", "))
	}
	r.Println("")

	flow := g.Flow()
	r.Printf("  %s %s\n", styles.Muted.Render("roots:"), strings.Join(flow.Roots(), ", "))
	r.Printf("  %s %s\n", styles.Muted.Render("leaves:"), strings.Join(flow.Leaves(), ", "))
	r.Println("")

	w, h := g.NodeSize()
	r.Println(styles.Muted.Render(fmt.Sprintf("Total: %d nodes, %d edges, node size %gx%g",
		flow.NodeCount(), flow.EdgeCount(), w, h)))
	return nil
}

// graphMarkdown outputs the graph in markdown format.
func graphMarkdown(r *output.Renderer, g *lineage.Graph, levels [][]string) error {
	r.Println(output.FormatHeader(1, "Lineage Graph"))
	r.Println("")

	r.Println(output.FormatHeader(2, "Nodes"))
	r.Table(nodeTable(g))
	r.Println("")

	r.Println(output.FormatHeader(2, "Edges"))
	r.Table(edgeTable(g))
	r.Println("")

	r.Println(output.FormatHeader(2, "Flow"))
	for i, level := range levels {
		r.Printf("- level %d: %s\n", i, strings.Join(level, ", "))
	}
	r.Println("")

	flow := g.Flow()
	w, h := g.NodeSize()
	r.Println(output.FormatHeader(2, "Summary"))
	r.Println(output.FormatKeyValue("Nodes", fmt.Sprintf("%d", flow.NodeCount())))
	r.Println(output.FormatKeyValue("Edges", fmt.Sprintf("%d", flow.EdgeCount())))
	r.Println(output.FormatKeyValue("Roots", strings.Join(flow.Roots(), ", ")))
	r.Println(output.FormatKeyValue("Leaves", strings.Join(flow.Leaves(), ", ")))
	r.Println(output.FormatKeyValue("Node size", fmt.Sprintf("%gx%g", w, h)))
	return nil
}

func nodeTable(g *lineage.Graph) ([]string, [][]string) {
	header := []string{"ID", "NAME", "CATEGORY", "POSITION", "BADGE", "DOWNSTREAM"}
	flow := g.Flow()
	var rows [][]string
	for _, n := range g.Nodes() {
		rows = append(rows, []string{
			n.ID, n.Name, string(n.Category),
			lineage.Point{X: n.X, Y: n.Y}.String(), n.Badge,
			strings.Join(flow.Downstream(n.ID), ", "),
		})
	}
	return header, rows
}

func edgeTable(g *lineage.Graph) ([]string, [][]string) {
	header := []string{"ID", "FROM", "TO", "LABEL", "PATH"}
	var rows [][]string
	for _, e := range g.Edges() {
		rows = append(rows, []string{e.ID, e.From, e.To, e.Label, g.EdgePath(e).String()})
	}
	return header, rows
}

func graphOutput(g *lineage.Graph, levels [][]string) output.GraphOutput {
	w, h := g.NodeSize()
	flow := g.Flow()
	out := output.GraphOutput{
		NodeSize: output.Size{Width: w, Height: h},
		Nodes:    make([]output.NodeOutput, 0, len(g.Nodes())),
		Edges:    make([]output.EdgeOutput, 0, len(g.Edges())),
		Levels:   levels,
		Roots:    flow.Roots(),
		Leaves:   flow.Leaves(),
	}

	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, output.NodeOutput{
			ID:         n.ID,
			Name:       n.Name,
			Label:      n.Label,
			Badge:      n.Badge,
			Category:   string(n.Category),
			X:          n.X,
			Y:          n.Y,
			Parents:    flow.Parents(n.ID),
			Children:   flow.Children(n.ID),
			Upstream:   flow.Upstream(n.ID),
			Downstream: flow.Downstream(n.ID),
		})
	}
	for _, e := range g.Edges() {
		from, to := g.Anchors(e)
		mid := g.EdgeMidpoint(e)
		out.Edges = append(out.Edges, output.EdgeOutput{
			ID:       e.ID,
			From:     e.From,
			To:       e.To,
			Label:    e.Label,
			Start:    pointOutput(from),
			End:      pointOutput(to),
			Midpoint: pointOutput(mid),
			Path:     g.EdgePath(e).String(),
		})
	}
	return out
}

func pointOutput(p lineage.Point) output.PointOutput {
	return output.PointOutput{X: p.X, Y: p.Y}
}
