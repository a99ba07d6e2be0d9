package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "[`render`](/cli/render)")
	assert.Contains(t, string(index), "`MESHX_UI_SESSION_TTL`")

	for _, name := range []string{"graph", "render", "sparkline", "explore", "ui", "version", "completion"} {
		assert.FileExists(t, filepath.Join(dir, name+".md"))
	}

	render, err := os.ReadFile(filepath.Join(dir, "render.md"))
	require.NoError(t, err)
	assert.Contains(t, string(render), "`--hover-node`")
	assert.Contains(t, string(render), "meshx render --hover-node sap-erp")
}

func TestGenerateConfigDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateConfigDocs(dir))

	doc, err := os.ReadFile(filepath.Join(dir, "configuration.md"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "`ui.port`")
	assert.Contains(t, string(doc), "`8765`")
}

func TestExampleConfig(t *testing.T) {
	out, err := exampleConfig()
	require.NoError(t, err)

	var parsed struct {
		Output string `yaml:"output"`
		UI     struct {
			Port       int    `yaml:"port"`
			SessionTTL string `yaml:"session_ttl"`
		} `yaml:"ui"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "auto", parsed.Output)
	assert.Equal(t, 8765, parsed.UI.Port)
	assert.Equal(t, "30m0s", parsed.UI.SessionTTL)
}

func TestCleanExample(t *testing.T) {
	assert.Equal(t, "a\n  b", cleanExample("    a\n      b\n"))
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, `a \| b`, cleanDescription("a | b\nsecond line"))
}
