package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshx-labs/meshx/internal/catalog"
	"github.com/meshx-labs/meshx/internal/cli/config"
	"github.com/meshx-labs/meshx/internal/cli/output"
	"github.com/meshx-labs/meshx/internal/cli/testutil"
	"github.com/meshx-labs/meshx/internal/lineage"
)

func TestGraphCommand_Markdown(t *testing.T) {
	res, err := testutil.RunCommand(t, NewGraphCommand(), nil)
	require.NoError(t, err)

	out := res.Stdout
	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Lineage Graph")
	assert.Contains(t, out, "## Edges")
	assert.Contains(t, out, "| sap-erp |")
	assert.Contains(t, out, "M 190 75 C 210 75, 210 170, 230 170")
	assert.Contains(t, out, "- level 2: supply-chain-dp")
	assert.Contains(t, out, "- **Nodes**: 5")
	assert.Contains(t, out, "- **Roots**: sap-erp, kafka-stream, rest-api")
	assert.Contains(t, out, "- **Leaves**: supply-chain-dp")
	assert.Contains(t, out, "| foundation-engine, supply-chain-dp |", "sources list everything they feed")
}

func TestGraphCommand_Text(t *testing.T) {
	res, err := testutil.RunCommand(t, NewGraphCommand(), testutil.ConfigWithOutput(output.ModeText))
	require.NoError(t, err)

	assert.Contains(t, res.Stdout, "Lineage Graph")
	assert.Contains(t, res.Stdout, "FOUNDATION ENGINE")
	assert.Contains(t, res.Stdout, "Total: 5 nodes, 4 edges, node size 160x70")
	assert.Contains(t, res.Stdout, "leaves: supply-chain-dp")
}

func TestGraphCommand_JSON(t *testing.T) {
	res, err := testutil.RunCommand(t, NewGraphCommand(), testutil.ConfigWithOutput(output.ModeJSON))
	require.NoError(t, err)

	var got output.GraphOutput
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	assert.Len(t, got.Nodes, 5)
	assert.Len(t, got.Edges, 4)
	require.Len(t, got.Levels, 3)
	assert.Equal(t, []string{catalog.NodeProduct}, got.Levels[2])
	assert.Equal(t, output.Size{Width: 160, Height: 70}, got.NodeSize)
	assert.Equal(t, []string{catalog.NodeSAP, catalog.NodeKafka, catalog.NodeREST}, got.Roots)
	assert.Equal(t, []string{catalog.NodeProduct}, got.Leaves)

	for _, e := range got.Edges {
		if e.ID == "e1" {
			assert.Equal(t, output.PointOutput{X: 190, Y: 75}, e.Start)
			assert.Equal(t, output.PointOutput{X: 230, Y: 170}, e.End)
		}
	}
	for _, n := range got.Nodes {
		if n.ID == catalog.NodeEngine {
			assert.Len(t, n.Parents, 3)
			assert.Equal(t, []string{catalog.NodeProduct}, n.Children)
		}
		if n.ID == catalog.NodeProduct {
			assert.Equal(t, []string{catalog.NodeSAP, catalog.NodeKafka, catalog.NodeREST, catalog.NodeEngine}, n.Upstream)
			assert.Empty(t, n.Downstream)
		}
	}
}

func TestGraphCommand_GraphFile(t *testing.T) {
	cfg := testutil.ConfigWithOutput(output.ModeJSON)
	cfg.GraphFile = testutil.WriteGraphFile(t)

	res, err := testutil.RunCommand(t, NewGraphCommand(), cfg)
	require.NoError(t, err)

	var got output.GraphOutput
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	assert.Len(t, got.Nodes, 3)
	assert.Len(t, got.Edges, 2)
}

func TestGraphCommand_BadGraphFile(t *testing.T) {
	cfg := config.Default()
	cfg.GraphFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := testutil.RunCommand(t, NewGraphCommand(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load graph")
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "idle",
			contains: []string{"<svg", "SAP_ERP"},
			excludes: []string{"~2.1k events/sec"},
		},
		{
			name:     "hovered node activates its edges",
			args:     []string{"--hover-node", catalog.NodeSAP},
			contains: []string{"~2.1k events/sec"},
			excludes: []string{"~3.8k events/sec"},
		},
		{
			name:     "hovered edge",
			args:     []string{"--hover-edge", "e4"},
			contains: []string{"~7.3k events/sec"},
			excludes: []string{"~2.1k events/sec"},
		},
		{
			name:     "hovered engine activates every edge",
			args:     []string{"--hover-node", catalog.NodeEngine},
			contains: []string{"~2.1k events/sec", "~3.8k events/sec", "~1.4k events/sec", "~7.3k events/sec"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := testutil.RunCommand(t, NewRenderCommand(), nil, tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, res.Stdout, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, res.Stdout, s)
			}
			assert.NotContains(t, res.Stdout, "data-on:", "standalone SVG has no event bindings")
		})
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
		msg  string
	}{
		{name: "unknown node", args: []string{"--hover-node", "nope"}, is: lineage.ErrNodeNotFound},
		{name: "unknown edge", args: []string{"--hover-edge", "e9"}, is: lineage.ErrEdgeNotFound},
		{name: "unknown selection", args: []string{"--select", "nope"}, is: lineage.ErrNodeNotFound},
		{name: "non-source selection", args: []string{"--select", catalog.NodeEngine}, msg: "cannot be selected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testutil.RunCommand(t, NewRenderCommand(), nil, tt.args...)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestRenderCommand_OutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lineage.svg")

	res, err := testutil.RunCommand(t, NewRenderCommand(), nil, "--select", catalog.NodeKafka, "--out", path)
	require.NoError(t, err)
	assert.Empty(t, res.Stdout)
	assert.Contains(t, res.Stderr, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestRenderCommand_JSON(t *testing.T) {
	res, err := testutil.RunCommand(t, NewRenderCommand(), testutil.ConfigWithOutput(output.ModeJSON),
		"--hover-node", catalog.NodeKafka, "--select", catalog.NodeKafka)
	require.NoError(t, err)

	var got struct {
		State map[string]string `json:"state"`
		SVG   string            `json:"svg"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	assert.Equal(t, catalog.NodeKafka, got.State["hoveredNode"])
	assert.Equal(t, catalog.NodeKafka, got.State["selected"])
	assert.Contains(t, got.SVG, "~3.8k events/sec")
}

func TestSparklineCommand_JSON(t *testing.T) {
	res, err := testutil.RunCommand(t, NewSparklineCommand(), testutil.ConfigWithOutput(output.ModeJSON), "1", "2", "3")
	require.NoError(t, err)

	var got output.SparklineOutput
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	assert.Equal(t, 200.0, got.Width)
	assert.Equal(t, 40.0, got.Height)
	assert.Equal(t, []output.PointOutput{{X: 0, Y: 40}, {X: 100, Y: 20}, {X: 200, Y: 0}}, got.Points)
	assert.Equal(t, "0,40 100,20 200,0", got.Polyline)
}

func TestSparklineCommand_Cases(t *testing.T) {
	tests := []struct {
		name     string
		cfg      func(*config.Config)
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "flat series on the bottom edge",
			args:     []string{"5", "5", "5"},
			contains: []string{"0,40 100,40 200,40"},
		},
		{
			name:     "single sample has no polyline",
			args:     []string{"7"},
			contains: []string{"| 0 | 7 | 0.00 | 40.00 |"},
			excludes: []string{"```"},
		},
		{
			name:     "configured plot size",
			cfg:      func(c *config.Config) { c.Sparkline.Width, c.Sparkline.Height = 10, 4 },
			args:     []string{"0", "1"},
			contains: []string{"0,4 10,0"},
		},
		{
			name:     "negative samples after the terminator",
			args:     []string{"--", "-2", "2"},
			contains: []string{"0,40 200,0", "| 0 | -2 | 0.00 | 40.00 |"},
		},
		{
			name:     "values flag",
			args:     []string{"--values", "-2,0,2"},
			contains: []string{"0,40 100,20 200,0"},
		},
		{
			name:     "catalog source",
			args:     []string{"--source", catalog.NodeREST},
			contains: []string{"| 0 | 1.6 | 0.00 | 0.00 |", "| 6 | 1 | 200.00 | 40.00 |"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if tt.cfg != nil {
				tt.cfg(cfg)
			}
			res, err := testutil.RunCommand(t, NewSparklineCommand(), cfg, tt.args...)
			require.NoError(t, err)
			testutil.AssertValidMarkdown(t, res.Stdout)
			for _, s := range tt.contains {
				assert.Contains(t, res.Stdout, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, res.Stdout, s)
			}
		})
	}
}

func TestSparklineCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{name: "no values", msg: "at least one value"},
		{name: "not a number", args: []string{"1", "two"}, msg: `invalid value "two"`},
		{name: "unknown source", args: []string{"--source", catalog.NodeEngine}, msg: "no volume series"},
		{name: "values and source", args: []string{"1", "--source", catalog.NodeSAP}, msg: "mutually exclusive"},
		{name: "values flag and args", args: []string{"1", "--values", "2,3"}, msg: "mutually exclusive"},
		{name: "nan sample", args: []string{"1", "NaN", "3"}, msg: "non-finite sample"},
		{name: "infinite sample", args: []string{"--values", "1,Inf"}, msg: "non-finite sample"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testutil.RunCommand(t, NewSparklineCommand(), nil, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	res, err := testutil.RunCommand(t, NewVersionCommand("1.2.3"), nil)
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "MeshX Foundation v1.2.3")
}
