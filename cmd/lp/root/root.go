package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"limitless/internal/ui"
)

const Version = "0.1.0"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lp",
		Short:         "Limitless: level up your habits",
		Long:          "Limitless turns recurring habits into paths that earn experience, attributes and ranks from E to SSS.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.AddCommand(
		newStatusCmd(),
		newTemplatesCmd(),
		newNewCmd(),
		newPathsCmd(),
		newDoCmd(),
		newRemoveCmd(),
		newTickCmd(),
		newLogCmd(),
		newHistoryCmd(),
		newExportCmd(),
		newBoardCmd(),
	)
	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		stop()
		os.Exit(1)
	}
}
