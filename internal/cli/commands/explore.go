package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/meshx-labs/meshx/internal/cli/explore"
	"github.com/meshx-labs/meshx/internal/interaction"
	"github.com/meshx-labs/meshx/internal/render"
)

// NewExploreCommand creates the explore command.
func NewExploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Explore the lineage graph in the terminal",
		Long: `Walk the lineage graph from the keyboard.

The cursor hovers nodes and edges, enter selects a source and esc closes
its detail panel. Highlighting follows the same rules as the dashboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			g, err := cmdCtx.LoadGraph()
			if err != nil {
				return err
			}

			session := interaction.NewSession(render.NewResolver(g))
			model := explore.New(session, cmdCtx.Renderer.Styles())

			p := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(explore.Model); ok {
				cmdCtx.Logger.Debug("explorer closed", "state", m.State())
			}
			return nil
		},
	}
}
