package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/meshx-labs/meshx/internal/ui"
)

// UIOptions holds options for the ui command.
type UIOptions struct {
	NoBrowser bool
}

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	opts := &UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the MeshX Foundation dashboard",
		Long: `Start a local web server serving the interactive dashboard.

The UI provides:
- Lineage graph with hover and selection highlighting
- Source detail panel with volume sparkline
- Readiness scorecard with blocker highlighting
- Prometheus metrics on /metrics

When a graph file is configured and --watch is set, edits to the file are
pushed to every open dashboard.`,
		Example: `  # Start UI on default port
  meshx ui

  # Serve a graph file on a custom port
  meshx ui --graph lineage.yaml --port 3000

  # Start without auto-opening browser
  meshx ui --no-browser`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts)
		},
	}

	cmd.Flags().Int("port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().Bool("watch", true, "Reload the graph file when it changes")
	cmd.Flags().Duration("session-ttl", 0, "Drop viewer state idle for longer than this (default: 30m)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")

	return cmd
}

func runUI(cmd *cobra.Command, opts *UIOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	g, err := cmdCtx.LoadGraph()
	if err != nil {
		return err
	}

	server, err := ui.NewServer(ui.Config{
		Graph:           g,
		GraphFile:       cfg.GraphFile,
		Port:            cfg.UI.Port,
		Watch:           cfg.UI.Watch && cfg.GraphFile != "",
		SessionSecret:   cfg.UI.SessionSecret,
		SessionTTL:      cfg.UI.SessionTTL,
		ShutdownTimeout: cfg.UI.ShutdownTimeout,
		Canvas:          canvas(),
		Logger:          cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	url := fmt.Sprintf("http://localhost:%d", cfg.UI.Port)
	if !opts.NoBrowser {
		go openBrowser(url)
	}

	cmdCtx.Renderer.Success("Serving dashboard on " + url)
	cmdCtx.Renderer.Println(cmdCtx.Renderer.Styles().Muted.Render("Press Ctrl+C to stop"))

	return server.Serve(cmd.Context())
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
