package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"limitless/internal/engine"
)

func newExportCmd() *cobra.Command {
	var rev int64

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the stored snapshot as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			var data []byte
			if rev > 0 {
				if a.sqlite == nil {
					return errNeedsSQLite
				}
				if data, err = a.sqlite.Revision(cmd.Context(), rev); err != nil {
					return err
				}
				if data == nil {
					return fmt.Errorf("no revision %d", rev)
				}
			} else if data, err = engine.EncodeSnapshot(a.svc.Snapshot()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().Int64Var(&rev, "rev", 0, "print a revision from lp history instead")
	return cmd
}
