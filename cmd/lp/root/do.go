package root

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"limitless/internal/ui"
)

func newDoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "do <path> <task#>",
		Short: "Complete (or uncheck) a task",
		Long:  "Daily tasks toggle. Weekly tasks count up to their weekly target.\n<path> is a list number, a path id or an id prefix.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("path and task number are required")
			}
			if n, err := strconv.Atoi(args[1]); err != nil || n < 1 {
				return errors.New("task number must be a positive integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			n, _ := strconv.Atoi(args[1])
			res, err := a.svc.CompleteTask(cmd.Context(), args[0], n-1)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			task := res.Path.Tasks[n-1]
			switch {
			case res.Completed:
				printEvents(out, res.Events)
			case res.Path.IsDone(n - 1):
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s already done this week.", task.Name)))
			default:
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s unchecked. Rewards already earned are kept.", task.Name)))
			}
			return nil
		},
	}
}
