package root

import (
	"github.com/spf13/cobra"

	"limitless/internal/tui"
)

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			return tui.RunBoard(cmd.Context(), a.svc, cmd.OutOrStdout(), a.cfg.TickInterval)
		},
	}
}
