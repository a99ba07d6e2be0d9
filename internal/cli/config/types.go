// Package config loads the meshx CLI configuration.
//
// Values are layered from built-in defaults, a meshx.yaml file, MESHX_
// environment variables (a .env file in the working directory is read
// first) and explicitly set command-line flags, in increasing priority.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	// GraphFile is a YAML lineage definition. Empty selects the built-in
	// catalog graph.
	GraphFile    string          `koanf:"graph_file"`
	Verbose      bool            `koanf:"verbose"`
	OutputFormat string          `koanf:"output" validate:"oneof=auto text markdown json"`
	UI           UIConfig        `koanf:"ui"`
	Sparkline    SparklineConfig `koanf:"sparkline"`
}

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port            int           `koanf:"port" validate:"min=0,max=65535"`
	Watch           bool          `koanf:"watch"`
	SessionSecret   string        `koanf:"session_secret"`
	SessionTTL      time.Duration `koanf:"session_ttl" validate:"min=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// SparklineConfig sizes projected sparklines.
type SparklineConfig struct {
	Width  float64 `koanf:"width" validate:"gt=0"`
	Height float64 `koanf:"height" validate:"gt=0"`
}

// Default configuration values.
const (
	DefaultOutput          = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultPort            = 8765
	DefaultSessionTTL      = 30 * time.Minute
	DefaultShutdownTimeout = 5 * time.Second
	DefaultSparklineWidth  = 200
	DefaultSparklineHeight = 40
)

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		UI: UIConfig{
			Port:            DefaultPort,
			Watch:           true,
			SessionTTL:      DefaultSessionTTL,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Sparkline: SparklineConfig{
			Width:  DefaultSparklineWidth,
			Height: DefaultSparklineHeight,
		},
	}
}
