// Package output serializes CLI results to stdout as yaml or json.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/screens"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ScreensResult is the top-level output of the `screens` command.
type ScreensResult struct {
	Screens []screens.Display `yaml:"screens" json:"screens"`
	Union   geometry.Bounds   `yaml:"union"   json:"union"`
}

// GridResult is the top-level output of the `grid` command.
type GridResult struct {
	Rows    int                 `yaml:"rows"    json:"rows"`
	Columns int                 `yaml:"columns" json:"columns"`
	Bounds  geometry.Bounds     `yaml:"bounds"  json:"bounds"`
	Cells   []geometry.GridCell `yaml:"cells"   json:"cells"`
}

// AreasResult is the top-level output of the `areas` command.
type AreasResult struct {
	Bounds geometry.Bounds `yaml:"bounds" json:"bounds"`
	Areas  []geometry.Area `yaml:"areas"  json:"areas"`
}

// PositionResult reports the pointer position after a command.
type PositionResult struct {
	X      int `yaml:"x"      json:"x"`
	Y      int `yaml:"y"      json:"y"`
	Screen int `yaml:"screen" json:"screen"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(v)
		}
		return PrintJSON(v)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to stdout as compact single-line JSON.
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintPrettyJSON serializes v to stdout as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintYAML serializes v to stdout as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
