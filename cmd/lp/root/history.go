package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"limitless/internal/engine"
	"limitless/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved revisions of your progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()
			if a.sqlite == nil {
				return errNeedsSQLite
			}

			revs, err := a.sqlite.Revisions(cmd.Context(), engine.DefaultSnapshotKey, n)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Revisions"))
			for _, r := range revs {
				at := r.SavedAt.In(a.svc.Rules().Location).Format("2006-01-02 15:04:05")
				fmt.Fprintf(out, "%s %s %s\n", ui.Key.Render(fmt.Sprintf("%6d", r.ID)), at, ui.Muted.Render(fmt.Sprintf("%d bytes", r.Size)))
			}
			fmt.Fprintln(out, ui.Muted.Render("Print one with: lp export --rev <id>"))
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", 10, "number of revisions")
	return cmd
}
