package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/deindent/pkg/config"
)

// structuredIndent is the indentation of JSON and YAML reports.
const structuredIndent = 2

// writeStructured encodes v as JSON or YAML.
func writeStructured(out io.Writer, format config.OutputFormat, v any) error {
	switch format {
	case config.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case config.FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(structuredIndent)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrUsage, format)
	}
}
