package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/output"
	"github.com/keypoint/keypointer/internal/platform"
	"github.com/keypoint/keypointer/internal/pointer"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click at the current position or at coordinates",
	Long:  "Click at the current pointer position, or move to --x/--y first.",
	RunE:  runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().Int("x", 0, "Move to X coordinate first")
	clickCmd.Flags().Int("y", 0, "Move to Y coordinate first")
	clickCmd.Flags().String("button", "left", "Mouse button: left, right, middle")
	clickCmd.Flags().Bool("double", false, "Double-click")
}

func runClick(cmd *cobra.Command, args []string) error {
	b, err := newBackend()
	if err != nil {
		return err
	}
	defer b.close()
	if err := b.checkControl(); err != nil {
		return err
	}

	buttonName, _ := cmd.Flags().GetString("button")
	button, err := platform.ParseMouseButton(buttonName)
	if err != nil {
		return err
	}
	count := 1
	if double, _ := cmd.Flags().GetBool("double"); double {
		count = 2
	}

	ctx := cmd.Context()
	if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
		x, _ := cmd.Flags().GetInt("x")
		y, _ := cmd.Flags().GetInt("y")
		if err := b.actor.Do(ctx, pointer.MoveTo{Pos: geometry.Pt(x, y)}); err != nil {
			return err
		}
	}
	if err := b.actor.Do(ctx, pointer.Click{Button: button, Count: count}); err != nil {
		return err
	}
	return output.Print(b.positionResult())
}
