package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"limitless/internal/ui"
)

func newTickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tick",
		Short: "Run daily/weekly resets and attribute decay now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			events, err := a.svc.Tick(cmd.Context())
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconLoop+" Up to date."))
				return nil
			}
			printEvents(cmd.OutOrStdout(), events)
			return nil
		},
	}
}
