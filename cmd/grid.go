package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/output"
	"github.com/keypoint/keypointer/internal/platform"
	"github.com/keypoint/keypointer/internal/screens"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Show the grid-mode cell layout",
	Long: "Compute the grid-mode cell layout for a display: bounds, two-symbol key\n" +
		"combination, and center per cell. --preview renders the layout to a PNG.",
	RunE: runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)
	gridCmd.Flags().Int("rows", 0, "Grid rows (default from config)")
	gridCmd.Flags().Int("columns", 0, "Grid columns (default from config)")
	gridCmd.Flags().Int("screen", 1, "Screen ordinal (1-based)")
	gridCmd.Flags().Bool("span-all", false, "Span all displays as one surface")
	gridCmd.Flags().String("preview", "", "Write a PNG preview of the layout to this path")
}

func runGrid(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	topo, err := screens.NewTopology(provider.Screens)
	if err != nil {
		return fmt.Errorf("reading display topology: %w", err)
	}

	cfg := snapshot.Grid
	if rows, _ := cmd.Flags().GetInt("rows"); rows > 0 {
		cfg.Rows = rows
	}
	if columns, _ := cmd.Flags().GetInt("columns"); columns > 0 {
		cfg.Columns = columns
	}

	var bounds geometry.Bounds
	if spanAll, _ := cmd.Flags().GetBool("span-all"); spanAll || cfg.SpanAll {
		bounds = topo.Union()
	} else {
		ordinal, _ := cmd.Flags().GetInt("screen")
		d, ok := topo.ByOrdinal(ordinal)
		if !ok {
			return fmt.Errorf("no screen with ordinal %d", ordinal)
		}
		bounds = d.Bounds
	}

	grid, err := geometry.NewGrid(cfg, bounds)
	if err != nil {
		return err
	}

	if preview, _ := cmd.Flags().GetString("preview"); preview != "" {
		if err := writeGridPreview(preview, grid); err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
	}
	return output.Print(output.GridResult{Rows: cfg.Rows, Columns: cfg.Columns, Bounds: bounds, Cells: grid.Cells()})
}
