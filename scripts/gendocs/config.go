package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meshx-labs/meshx/internal/cli/config"
)

// ConfigField is one key of meshx.yaml.
type ConfigField struct {
	Key         string
	Type        string
	Default     any
	Description string
}

// EnvVar is the environment variable that overrides the key.
func (f ConfigField) EnvVar() string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(f.Key, ".", "_"))
}

// configSchema lists every configuration key with its default.
func configSchema() []ConfigField {
	def := config.Default()
	return []ConfigField{
		{Key: "graph_file", Type: "string", Default: def.GraphFile, Description: "Lineage graph definition; empty uses the built-in catalog"},
		{Key: "verbose", Type: "bool", Default: def.Verbose, Description: "Debug logging on stderr"},
		{Key: "output", Type: "string", Default: def.OutputFormat, Description: "Output format: auto, text, markdown, json"},
		{Key: "ui.port", Type: "int", Default: def.UI.Port, Description: "Dashboard port"},
		{Key: "ui.watch", Type: "bool", Default: def.UI.Watch, Description: "Reload the graph file when it changes"},
		{Key: "ui.session_secret", Type: "string", Default: def.UI.SessionSecret, Description: "Cookie signing secret; empty generates one per run"},
		{Key: "ui.session_ttl", Type: "duration", Default: def.UI.SessionTTL.String(), Description: "Idle time after which viewer state is dropped"},
		{Key: "ui.shutdown_timeout", Type: "duration", Default: def.UI.ShutdownTimeout.String(), Description: "Graceful shutdown limit"},
		{Key: "sparkline.width", Type: "float", Default: def.Sparkline.Width, Description: "Sparkline plot width"},
		{Key: "sparkline.height", Type: "float", Default: def.Sparkline.Height, Description: "Sparkline plot height"},
	}
}

// generateConfigDocs writes the configuration reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "meshx.yaml reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("meshx reads `meshx.yaml` (or `meshx.yml`) from the working directory, or the file named by `--config`. " +
		"A relative `graph_file` is resolved against the config file's directory.")

	w.Header(2, "Keys")
	var rows [][]string
	for _, f := range configSchema() {
		def := fmt.Sprint(f.Default)
		if def != "" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode(f.Key), f.Type, def, InlineCode(f.EnvVar()), f.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Environment", "Description"}, rows)

	example, err := exampleConfig()
	if err != nil {
		return err
	}
	w.Header(2, "Example")
	w.CodeBlock("yaml", example)

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}

// exampleConfig renders the defaults as a nested meshx.yaml.
func exampleConfig() (string, error) {
	doc := map[string]any{}
	for _, f := range configSchema() {
		section, key, nested := strings.Cut(f.Key, ".")
		if !nested {
			doc[f.Key] = f.Default
			continue
		}
		m, ok := doc[section].(map[string]any)
		if !ok {
			m = map[string]any{}
			doc[section] = m
		}
		m[key] = f.Default
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render example config: %w", err)
	}
	return string(out), nil
}
