// Package report renders finalized benchmark rows. The harness emits
// structured rows only; every presentation concern lives here.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/compbench/internal/bench"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatPlot  = "plot"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists supported output formats.
func Formats() []string {
	return []string{FormatTable, FormatJSON, FormatYAML, FormatPlot}
}

// Render writes rows to w in the requested format.
func Render(w io.Writer, format string, rows []bench.Row) error {
	switch format {
	case FormatTable:
		return renderTable(w, rows)
	case FormatJSON:
		return renderJSON(w, rows)
	case FormatYAML:
		return renderYAML(w, rows)
	case FormatPlot:
		return renderPlot(w, rows)
	default:
		return fmt.Errorf("%w: %s (supported: table, json, yaml, plot)", ErrUnknownFormat, format)
	}
}

func renderJSON(w io.Writer, rows []bench.Row) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(rows)
	if err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	return nil
}

func renderYAML(w io.Writer, rows []bench.Row) error {
	encoder := yaml.NewEncoder(w)

	err := encoder.Encode(rows)
	if err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	return encoder.Close()
}
