package main

import (
	"github.com/aussiebroadwan/doorman/internal/accounts/app"
	"github.com/aussiebroadwan/doorman/internal/accounts/settings"
	"github.com/spf13/cobra"
)

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every feature switch with its value and source",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := settings.Open(app.LoadConfig().SettingsFile)
		if err != nil {
			return err
		}
		return printSettings(cmd.OutOrStdout(), f.Attributes())
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
}
