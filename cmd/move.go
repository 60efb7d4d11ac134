package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/output"
	"github.com/keypoint/keypointer/internal/pointer"
)

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move the pointer to absolute coordinates",
	Long: "Move the pointer to absolute virtual-desktop coordinates. Targets are\n" +
		"clamped to the bounds of the screen they resolve to.",
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
	moveCmd.Flags().Int("x", 0, "Target X coordinate")
	moveCmd.Flags().Int("y", 0, "Target Y coordinate")
	moveCmd.Flags().Int("screen", 0, "Screen ordinal hint (1-based, 0 = resolve by containment)")
	moveCmd.Flags().Bool("glide", false, "Animate the move instead of warping")
	moveCmd.MarkFlagRequired("x")
	moveCmd.MarkFlagRequired("y")
}

func runMove(cmd *cobra.Command, args []string) error {
	b, err := newBackend()
	if err != nil {
		return err
	}
	defer b.close()
	if err := b.checkControl(); err != nil {
		return err
	}

	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	screen, _ := cmd.Flags().GetInt("screen")
	glide, _ := cmd.Flags().GetBool("glide")

	target := geometry.Position{X: x, Y: y, Screen: screen}
	if err := b.actor.Do(cmd.Context(), pointer.MoveTo{Pos: target, Glide: glide}); err != nil {
		return err
	}
	return output.Print(b.positionResult())
}
