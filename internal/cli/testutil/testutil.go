// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/meshx-labs/meshx/internal/cli/config"
	"github.com/meshx-labs/meshx/internal/cli/output"
	"github.com/meshx-labs/meshx/internal/testutil"
)

// SmallGraph is a three-node graph definition: one source feeding the
// engine, which feeds the data product.
const SmallGraph = `node_size: {width: 160, height: 70}
nodes:
  - {id: sap-erp, name: SAP_ERP, label: WAREHOUSE DATA, category: source, x: 30, y: 40}
  - {id: foundation-engine, name: FOUNDATION ENGINE, category: transform, x: 230, y: 135}
  - {id: supply-chain-dp, name: SUPPLY CHAIN DP, category: output, x: 420, y: 135}
edges:
  - {id: e1, from: sap-erp, to: foundation-engine, label: "~2.1k events/sec"}
  - {id: e4, from: foundation-engine, to: supply-chain-dp, label: "~7.3k events/sec"}
`

// WriteGraphFile writes SmallGraph into a temporary directory and returns
// its path.
func WriteGraphFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lineage.yaml")
	if err := os.WriteFile(path, []byte(SmallGraph), 0o600); err != nil {
		t.Fatalf("failed to write graph file: %v", err)
	}
	return path
}

// Result holds the captured streams of a command run.
type Result struct {
	Stdout string
	Stderr string
}

// RunCommand executes cmd with args, cfg and a test logger on its
// context, the way the root command prepares subcommands.
func RunCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (Result, error) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	ctx := config.WithConfig(context.Background(), cfg)
	ctx = config.WithLogger(ctx, testutil.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)
	return Result{Stdout: stdout.String(), Stderr: stderr.String()}, err
}

// ConfigWithOutput returns the default config with the given output mode.
func ConfigWithOutput(mode output.Mode) *config.Config {
	cfg := config.Default()
	cfg.OutputFormat = string(mode)
	return cfg
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and basic structure.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
