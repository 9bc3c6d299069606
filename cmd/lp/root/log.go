package root

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"limitless/internal/engine"
	"limitless/internal/ui"
)

func newLogCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()
			if a.events == nil {
				return errNeedsSQLite
			}

			recs, err := a.events.Recent(cmd.Context(), n)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing yet."))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Log"))
			for i := len(recs) - 1; i >= 0; i-- {
				r := recs[i]
				at := r.At.In(a.svc.Rules().Location).Format("2006-01-02 15:04")
				fmt.Fprintf(out, "%s %s\n", ui.Muted.Render(at), ui.EventLine(engine.Event{Kind: engine.EventKind(r.Kind), Message: r.Message}))
			}

			counts, err := a.events.CountByKind(cmd.Context())
			if err != nil {
				return err
			}
			totals := make([]string, 0, len(counts))
			kinds := make([]string, 0, len(counts))
			for kind := range counts {
				kinds = append(kinds, kind)
			}
			slices.Sort(kinds)
			for _, kind := range kinds {
				totals = append(totals, fmt.Sprintf("%s %d", kind, counts[kind]))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.Muted.Render("Totals: "+strings.Join(totals, " · ")))
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", 20, "number of entries")
	return cmd
}
