package root

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"limitless/internal/engine"
	"limitless/internal/ui"
)

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "paths",
		Aliases: []string{"ls"},
		Short:   "List paths and today's tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			paths := a.svc.Snapshot().Paths
			if len(paths) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No paths yet. Start one with: lp new <template>"))
				return nil
			}
			// Show the current period, the way the next completion will see it.
			now := a.svc.Now()
			for i, p := range paths {
				p, _ = engine.Tick(p, now, a.svc.Rules())
				writePath(out, i+1, p, p.CurrentStreak(now, a.svc.Rules()))
			}
			return nil
		},
	}
}

func writePath(out io.Writer, n int, p engine.Path, streak int) {
	fmt.Fprintf(out, "%s %s %s\n", ui.Key.Render(fmt.Sprintf("%d.", n)), p.Icon, ui.H2.Render(p.Name))
	next := engine.XPRequiredForPathLevel(p.Level + 1)
	fmt.Fprintf(out, "   %s · L%d %s · %d/%d XP · %s %d\n",
		ui.Gold.Render(p.CurrentTitle), p.Level, ui.ProgressBar(p.TotalExperience-engine.XPRequiredForPathLevel(p.Level), next-engine.XPRequiredForPathLevel(p.Level), 12),
		p.TotalExperience, next, ui.IconFire, streak)
	for i, t := range p.Tasks {
		fmt.Fprintf(out, "   %d) %s %s %s\n", i+1, ui.TaskStatus(p, i), t.Name, ui.Muted.Render(fmt.Sprintf("+%d XP", t.XPReward)))
	}
}
