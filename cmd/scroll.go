package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keypoint/keypointer/internal/pointer"
)

var scrollCmd = &cobra.Command{
	Use:   "scroll",
	Short: "Scroll at the current pointer position",
	Long:  "Scroll up, down, left, or right at the current pointer position, in line units.",
	RunE:  runScroll,
}

func init() {
	rootCmd.AddCommand(scrollCmd)
	scrollCmd.Flags().String("direction", "", "Scroll direction: up, down, left, right")
	scrollCmd.Flags().Int("amount", 3, "Scroll amount in line units")
	scrollCmd.MarkFlagRequired("direction")
}

func runScroll(cmd *cobra.Command, args []string) error {
	direction, _ := cmd.Flags().GetString("direction")
	amount, _ := cmd.Flags().GetInt("amount")
	if amount < 1 {
		amount = 1
	}

	var dx, dy int
	switch direction {
	case "up":
		dy = amount
	case "down":
		dy = -amount
	case "left":
		dx = amount
	case "right":
		dx = -amount
	default:
		return fmt.Errorf("unknown direction: %q (use up, down, left, or right)", direction)
	}

	b, err := newBackend()
	if err != nil {
		return err
	}
	defer b.close()
	if err := b.checkControl(); err != nil {
		return err
	}
	return b.actor.Do(cmd.Context(), pointer.Scroll{Dx: dx, Dy: dy})
}
