package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keypoint/keypointer/internal/output"
	"github.com/keypoint/keypointer/internal/platform"
	"github.com/keypoint/keypointer/internal/screens"
)

var screensCmd = &cobra.Command{
	Use:   "screens",
	Short: "List connected displays",
	Long: "List connected displays with their virtual-desktop bounds. Ordinals are\n" +
		"1-based with the primary display first; they are the targets of the\n" +
		"session's jump-to-screen keys.",
	RunE: runScreens,
}

func init() {
	rootCmd.AddCommand(screensCmd)
}

func runScreens(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	topo, err := screens.NewTopology(provider.Screens)
	if err != nil {
		return fmt.Errorf("reading display topology: %w", err)
	}
	return output.Print(output.ScreensResult{Screens: topo.Displays(), Union: topo.Union()})
}
