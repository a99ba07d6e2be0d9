// Package commands implements the meshx subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/cli/config"
	"github.com/meshx-labs/meshx/internal/cli/output"
	"github.com/meshx-labs/meshx/internal/lineage"
	"github.com/meshx-labs/meshx/internal/render"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config, logger and renderer stored on
// the command's context by the root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// LoadGraph returns the configured graph file, or the built-in catalog
// graph when none is set.
func (c *CommandContext) LoadGraph() (*lineage.Graph, error) {
	if c.Cfg.GraphFile == "" {
		c.Logger.Debug("using built-in catalog graph")
		return catalog.Graph(), nil
	}
	g, err := lineage.LoadFile(c.Cfg.GraphFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}
	c.Logger.Debug("loaded graph", "file", c.Cfg.GraphFile, "nodes", len(g.Nodes()), "edges", len(g.Edges()))
	return g, nil
}

// canvas is the drawing area every command renders into.
func canvas() render.Canvas {
	return render.Canvas{Width: catalog.CanvasWidth, Height: catalog.CanvasHeight}
}
