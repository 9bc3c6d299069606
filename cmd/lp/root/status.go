package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"limitless/internal/engine"
	"limitless/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show rank, attributes and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			snap := a.svc.Snapshot()
			u := snap.UserStats
			now := a.svc.Now()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Status"))
			fmt.Fprintln(out, ui.LabelValue("Rank", ui.RankText(u.OverallRank)))
			if u.OverallRank == engine.RankSSS {
				fmt.Fprintln(out, ui.LabelValue("Experience", fmt.Sprintf("%d (max rank)", u.Experience)))
			} else {
				next := engine.NextRank(u.OverallRank)
				tier, _ := engine.OverallRanks.Threshold(next)
				detail := fmt.Sprintf("%d (%d to %s", u.Experience, u.XPToNextRank(), next)
				if days := tier.MinDays - u.ElapsedDays(now); days > 0 {
					detail += fmt.Sprintf(", unlocks in %d days", days)
				}
				fmt.Fprintln(out, ui.LabelValue("Experience", detail+")"))
			}
			fmt.Fprintln(out, ui.LabelValue("Days active", u.ElapsedDays(now)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Attributes"))
			for _, attr := range engine.AllAttributes {
				fmt.Fprintf(out, "- %s %-12s %4d  %s\n", ui.AttributeIcon(attr), ui.AttributeLabel(attr), u.Attributes[attr], ui.RankText(u.AttributeRanks[attr]))
			}
			fmt.Fprintln(out, "")

			st := u.Statistics
			fmt.Fprintln(out, ui.H2.Render("📈 Statistics"))
			fmt.Fprintln(out, "- "+ui.LabelValue("Tasks completed", st.TasksCompleted))
			fmt.Fprintln(out, "- "+ui.LabelValue("Paths created", st.PathsCreated))
			fmt.Fprintln(out, "- "+ui.LabelValue("Longest streak", st.LongestStreak))
			fmt.Fprintln(out, "- "+ui.LabelValue("Total XP gained", st.TotalXPGained))
			fmt.Fprintln(out, "")

			checker := engine.NewAchievementChecker(snap)
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, checker.CountEarned(), checker.CountTotal())))
			for _, ach := range checker.GetAchievements() {
				if ach.Earned {
					fmt.Fprintf(out, "- %s %s %s\n", ach.Icon, ui.Good.Render(ach.Name), ui.Muted.Render(ach.Description))
				} else {
					fmt.Fprintf(out, "- 🔒 %s\n", ui.Muted.Render(ach.Name+": "+ach.Description))
				}
			}
			return nil
		},
	}
}
