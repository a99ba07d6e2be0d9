package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/cli/output"
	"github.com/meshx-labs/meshx/internal/interaction"
	"github.com/meshx-labs/meshx/internal/lineage"
	"github.com/meshx-labs/meshx/internal/render"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	HoverNode string
	HoverEdge string
	Select    string
	Out       string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the lineage graph as SVG",
		Long: `Render the lineage graph as a standalone SVG in any interaction state.

Hover and selection flags are applied in order: hover node, hover edge,
then select. Unknown ids are rejected.`,
		Example: `  # Render the idle graph
  meshx render > lineage.svg

  # Render with a hovered source and its edges highlighted
  meshx render --hover-node sap-erp --out hover.svg

  # Render a selected source
  meshx render --select kafka-stream`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.HoverNode, "hover-node", "", "Node under the pointer")
	cmd.Flags().StringVar(&opts.HoverEdge, "hover-edge", "", "Edge under the pointer")
	cmd.Flags().StringVar(&opts.Select, "select", "", "Selected source node")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Write the SVG to a file instead of stdout")

	_ = cmd.RegisterFlagCompletionFunc("hover-node", completeNodeIDs)
	_ = cmd.RegisterFlagCompletionFunc("select", completeNodeIDs)
	_ = cmd.RegisterFlagCompletionFunc("hover-edge", completeEdgeIDs)

	return cmd
}

func runRender(cmd *cobra.Command, opts *RenderOptions) error {
	cmdCtx := NewCommandContext(cmd)
	g, err := cmdCtx.LoadGraph()
	if err != nil {
		return err
	}

	resolver := render.NewResolver(g)
	state, err := stateFor(resolver, opts)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("rendering", "state", state)

	var buf bytes.Buffer
	c := render.Lineage(resolver, state, render.LineageOptions{Canvas: canvas()})
	if err := c.Render(cmd.Context(), &buf); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	buf.WriteByte('\n')

	if opts.Out == "" {
		r := cmdCtx.Renderer
		if r.EffectiveMode() == output.ModeJSON {
			return r.JSON(map[string]any{"state": state, "svg": buf.String()})
		}
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(opts.Out, buf.Bytes(), 0o644); err != nil { //nolint:gosec // SVG output is meant to be shared
		return fmt.Errorf("failed to write %s: %w", opts.Out, err)
	}
	cmdCtx.Renderer.Success(fmt.Sprintf("Wrote %s", opts.Out))
	return nil
}

// stateFor replays the requested interactions on an idle state.
func stateFor(r *interaction.Resolver, opts *RenderOptions) (interaction.State, error) {
	var events []interaction.Event
	if opts.HoverNode != "" {
		events = append(events, interaction.NodeEnter{ID: opts.HoverNode})
	}
	if opts.HoverEdge != "" {
		events = append(events, interaction.EdgeEnter{ID: opts.HoverEdge})
	}
	if opts.Select != "" {
		n, ok := r.Graph().Node(opts.Select)
		if ok && !r.Selectable(n) {
			return interaction.State{}, fmt.Errorf("node %q cannot be selected", opts.Select)
		}
		events = append(events, interaction.NodeClick{ID: opts.Select})
	}

	var s interaction.State
	for _, ev := range events {
		if err := r.Validate(ev); err != nil {
			return interaction.State{}, err
		}
		s = r.Apply(s, ev)
	}
	return s, nil
}

func completeNodeIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return ids(catalog.Nodes(), func(n lineage.Node) string { return n.ID }), cobra.ShellCompDirectiveNoFileComp
}

func completeEdgeIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return ids(catalog.Edges(), func(e lineage.Edge) string { return e.ID }), cobra.ShellCompDirectiveNoFileComp
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}
