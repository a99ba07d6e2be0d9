package lineage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDefinition = `
node_size: {width: 160, height: 70}
nodes:
  - {id: sap-erp, name: SAP_ERP, label: WAREHOUSE DATA, badge: "DOMAIN: LOGISTICS", category: source, x: 30, y: 40}
  - {id: foundation-engine, name: FOUNDATION ENGINE, category: transform, x: 230, y: 135}
  - {id: supply-chain-dp, name: SUPPLY CHAIN DP, category: output, x: 420, y: 135}
edges:
  - {id: e1, from: sap-erp, to: foundation-engine, label: "~2.1k events/sec"}
  - {id: e4, from: foundation-engine, to: supply-chain-dp, label: "~7.3k events/sec"}
`

func TestDecode(t *testing.T) {
	g, err := Decode(strings.NewReader(sampleDefinition))
	require.NoError(t, err)

	assert.Len(t, g.Nodes(), 3)
	assert.Equal(t, "DOMAIN: LOGISTICS", g.MustNode("sap-erp").Badge)
	assert.Equal(t, "M 190 75 C 210 75, 210 170, 230 170", g.EdgePath(g.MustEdge("e1")).String())
}

func TestDecode_CustomNodeSize(t *testing.T) {
	def := strings.Replace(sampleDefinition, "{width: 160, height: 70}", "{width: 120, height: 50}", 1)

	g, err := Decode(strings.NewReader(def))
	require.NoError(t, err)

	w, h := g.NodeSize()
	assert.Equal(t, 120.0, w)
	assert.Equal(t, 50.0, h)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "empty",
			input:   "",
			wantMsg: "empty definition",
		},
		{
			name:    "unknown field",
			input:   "nodes: []\ncolour: red\n",
			wantMsg: "decode graph definition",
		},
		{
			name:    "missing edges",
			input:   "nodes:\n  - {id: a, name: A, category: source}\n",
			wantMsg: "Edges is required",
		},
		{
			name:    "bad category",
			input:   strings.Replace(sampleDefinition, "category: output", "category: sink", 1),
			wantMsg: "Category must be one of",
		},
		{
			name:    "negative position",
			input:   strings.Replace(sampleDefinition, "x: 30", "x: -30", 1),
			wantMsg: "X must be >= 0",
		},
		{
			name:    "bad node size",
			input:   strings.Replace(sampleDefinition, "width: 160", "width: 0", 1),
			wantMsg: "Width must be > 0",
		},
		{
			name:    "shape violation",
			input:   strings.Replace(sampleDefinition, "to: supply-chain-dp", "to: sap-erp", 1),
			wantMsg: "cycle detected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lineage.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDefinition), 0600))

	g, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, g.Edges(), 2)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_InvalidIncludesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodes: []\nedges: []\n"), 0600))

	_, err := LoadFile(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGraph)
	assert.Contains(t, err.Error(), path)
}
