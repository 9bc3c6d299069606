package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"limitless/internal/ui"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List path templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			catalog := a.svc.Catalog()
			fmt.Fprintln(out, ui.Heading(ui.IconPath, "Templates"))
			for _, key := range catalog.Keys() {
				tpl, err := catalog.Lookup(key)
				if err != nil {
					return err
				}
				attrs := make([]string, 0, len(tpl.Attributes))
				for _, attr := range tpl.Attributes {
					attrs = append(attrs, ui.AttributeLabel(attr))
				}
				fmt.Fprintf(out, "%s %s %s\n", tpl.Icon, ui.Key.Render(key), tpl.Name)
				fmt.Fprintf(out, "   %s\n", ui.Muted.Render(strings.Join(attrs, ", ")+" · "+strings.Join(tpl.Titles, " → ")))
				if tpl.Perk != nil && tpl.Perk.Description != "" {
					fmt.Fprintf(out, "   %s\n", ui.Gold.Render(tpl.Perk.Description))
				}
				for _, t := range tpl.Tasks {
					freq := string(t.Frequency)
					if t.TimesPerWeek > 0 {
						freq = fmt.Sprintf("%dx/week", t.TimesPerWeek)
					}
					fmt.Fprintf(out, "   - %s %s\n", t.Name, ui.Muted.Render(fmt.Sprintf("(%s, +%d XP)", freq, t.XPReward)))
				}
			}
			return nil
		},
	}
}
