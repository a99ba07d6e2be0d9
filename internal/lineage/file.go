package lineage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Definition is the on-disk form of a graph.
//
//	node_size: {width: 160, height: 70}
//	nodes:
//	  - {id: sap-erp, name: SAP_ERP, category: source, x: 30, y: 40}
//	edges:
//	  - {id: e1, from: sap-erp, to: foundation-engine, label: "~2.1k events/sec"}
type Definition struct {
	NodeSize *Size  `yaml:"node_size" validate:"omitempty"`
	Nodes    []Node `yaml:"nodes" validate:"required,min=1,dive"`
	Edges    []Edge `yaml:"edges" validate:"required,min=1,dive"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `yaml:"width" validate:"gt=0"`
	Height float64 `yaml:"height" validate:"gt=0"`
}

var validate = validator.New()

// LoadFile reads and validates a YAML graph definition.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("open graph file: %w", err)
	}
	defer func() { _ = f.Close() }()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Decode reads a YAML graph definition from r.
func Decode(r io.Reader) (*Graph, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty definition", ErrInvalidGraph)
		}
		return nil, fmt.Errorf("decode graph definition: %w", err)
	}
	return def.Build()
}

// Build validates the field tags of d and constructs the Graph.
func (d Definition) Build() (*Graph, error) {
	if err := validate.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGraph, formatValidationError(err))
	}

	var opts []Option
	if d.NodeSize != nil {
		opts = append(opts, WithNodeSize(d.NodeSize.Width, d.NodeSize.Height))
	}
	return New(d.Nodes, d.Edges, opts...)
}

// formatValidationError turns validator output into one readable sentence
// per failing field.
func formatValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Definition.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be %s %s", field, map[string]string{"gt": ">", "gte": ">="}[fe.Tag()], fe.Param())
	default:
		return field + " is invalid"
	}
}
