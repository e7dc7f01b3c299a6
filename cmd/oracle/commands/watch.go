package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/oracle/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Invalidate cached models while project files change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			warm, _ := cmd.Flags().GetBool("warm")
			if err := c.app.Watch(cmd.Context(), root, app.WatchOptions{Warm: warm}); err != nil {
				return err
			}
			writeTelemetry(cmd.OutOrStdout(), c.app.Telemetry())
			return nil
		},
	}
	cmd.Flags().BoolP("warm", "w", false, "Rebuild invalidated models in the background")
	return cmd
}
