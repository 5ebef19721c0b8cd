package main

import "github.com/spf13/cobra"

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage application tokens",
	Long: `Application tokens are per-account API passwords. An account can hold a
limited number of them, each with a unique label.`,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
