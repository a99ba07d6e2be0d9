package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fieldKey(fe), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// fieldKey maps a validator namespace like Config.UI.Port to the config
// key ui.port.
func fieldKey(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")[1:]
	for i, p := range parts {
		parts[i] = keyNames[p]
		if parts[i] == "" {
			parts[i] = strings.ToLower(p)
		}
	}
	return strings.Join(parts, ".")
}

var keyNames = map[string]string{
	"OutputFormat":    "output",
	"UI":              "ui",
	"Port":            "port",
	"SessionTTL":      "session_ttl",
	"ShutdownTimeout": "shutdown_timeout",
	"Sparkline":       "sparkline",
	"Width":           "width",
	"Height":          "height",
}
