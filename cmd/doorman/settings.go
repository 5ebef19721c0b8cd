package main

import (
	"io"

	"github.com/aussiebroadwan/doorman/internal/accounts/settings"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect feature switches",
	Long: `Inspect the feature switches (signup, first_user_admin,
last_admin_disable) resolved from defaults, DOORMAN_SETTINGS_FILE and
DOORMAN_<FEATURE>_ENABLED variables.`,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func printSettings(w io.Writer, attrs []settings.Attribute) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(attrs); err != nil {
		return err
	}
	return enc.Close()
}
