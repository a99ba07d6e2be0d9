package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// configKey is used to store the loaded config in context.
type configKey struct{}

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "MESHX_"

// configNames are looked up in the working directory, in order.
var configNames = []string{"meshx.yaml", "meshx.yml"}

// flagKeys maps command-line flags to config keys. Flags not listed here
// are command options and never reach the config.
var flagKeys = map[string]string{
	"graph":       "graph_file",
	"verbose":     "verbose",
	"output":      "output",
	"port":        "ui.port",
	"watch":       "ui.watch",
	"session-ttl": "ui.session_ttl",
	"width":       "sparkline.width",
	"height":      "sparkline.height",
}

// sections are the nested config blocks an environment variable can
// address, e.g. MESHX_UI_SESSION_TTL -> ui.session_ttl.
var sections = []string{"ui", "sparkline"}

// Loaded is the result of a Load call.
type Loaded struct {
	Config *Config
	// File is the config file read, or "".
	File string
}

// findConfigFile finds the config file to use.
// Priority: explicit path > meshx.yaml > meshx.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// envKey transforms MESHX_UI_SESSION_TTL into ui.session_ttl.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

// Load reads configuration from defaults, file, environment and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Loaded, error) {
	k := koanf.New(".")

	// 1. Defaults
	def := Default()
	if err := k.Load(confmap.Provider(map[string]any{
		"graph_file":          def.GraphFile,
		"verbose":             def.Verbose,
		"output":              def.OutputFormat,
		"ui.port":             def.UI.Port,
		"ui.watch":            def.UI.Watch,
		"ui.session_secret":   def.UI.SessionSecret,
		"ui.session_ttl":      def.UI.SessionTTL.String(),
		"ui.shutdown_timeout": def.UI.ShutdownTimeout.String(),
		"sparkline.width":     def.Sparkline.Width,
		"sparkline.height":    def.Sparkline.Height,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment, with .env filling in anything not already exported.
	_ = godotenv.Load()
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// A graph file named in the config file is relative to that file.
	if used != "" && !graphFromOutside(flags) {
		cfg.GraphFile = resolvePathRelativeTo(cfg.GraphFile, filepath.Dir(used))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Loaded{Config: &cfg, File: used}, nil
}

// graphFromOutside reports whether graph_file was set by a flag or the
// environment, where relative paths mean the working directory.
func graphFromOutside(flags *pflag.FlagSet) bool {
	if flags != nil && flags.Changed("graph") {
		return true
	}
	_, ok := os.LookupEnv(EnvPrefix + "GRAPH_FILE")
	return ok
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithConfig returns ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config stored by WithConfig, or the defaults.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return Default()
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// NewLogger builds the CLI logger: text on w, debug level when verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
