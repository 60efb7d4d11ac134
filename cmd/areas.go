package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/output"
	"github.com/keypoint/keypointer/internal/platform"
	"github.com/keypoint/keypointer/internal/screens"
)

var areasCmd = &cobra.Command{
	Use:   "areas",
	Short: "Show the area-mode region layout",
	Long: "Compute the nine area-mode regions for a display. Each region is bound to\n" +
		"a single key (q/w/e, a/s/d, z/x/c in row-major order).",
	RunE: runAreas,
}

func init() {
	rootCmd.AddCommand(areasCmd)
	areasCmd.Flags().Int("screen", 1, "Screen ordinal (1-based)")
}

func runAreas(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	topo, err := screens.NewTopology(provider.Screens)
	if err != nil {
		return fmt.Errorf("reading display topology: %w", err)
	}

	ordinal, _ := cmd.Flags().GetInt("screen")
	d, ok := topo.ByOrdinal(ordinal)
	if !ok {
		return fmt.Errorf("no screen with ordinal %d", ordinal)
	}

	layout := geometry.AreaLayout(d.Bounds)
	return output.Print(output.AreasResult{Bounds: d.Bounds, Areas: layout[:]})
}
