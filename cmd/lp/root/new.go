package root

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"limitless/internal/engine"
	"limitless/internal/ui"
)

func newNewCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "new [template]",
		Short: "Start a path from a template or a YAML file",
		Args: func(cmd *cobra.Command, args []string) error {
			switch {
			case file == "" && len(args) != 1:
				return errors.New("template key is required (see lp templates), or use --file")
			case file != "" && len(args) != 0:
				return errors.New("use either a template key or --file, not both")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			var (
				p      engine.Path
				events []engine.Event
			)
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open path file: %w", err)
				}
				tpl, err := engine.LoadTemplateYAML(f)
				_ = f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				p, events, err = a.svc.CreateCustomPath(cmd.Context(), tpl)
				if err != nil {
					return err
				}
			} else {
				p, events, err = a.svc.CreatePath(cmd.Context(), args[0])
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			printEvents(out, events)
			fmt.Fprintln(out, ui.LabelValue("Path", fmt.Sprintf("#%d %s", len(a.svc.Snapshot().Paths), ui.Muted.Render(p.ID))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML path definition")
	return cmd
}
