package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/doorman/internal/accounts/settings"
	"github.com/spf13/cobra"
)

var settingsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the feature switches every time the settings file changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes\n", a.Settings().Path())
		if err := printSettings(out, a.Settings().Attributes()); err != nil {
			return err
		}

		return a.WatchSettings(ctx, func(attrs []settings.Attribute) {
			fmt.Fprintln(out, "---")
			_ = printSettings(out, attrs)
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsWatchCmd)
}
