package main

import "github.com/spf13/cobra"

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
	Long:  `Register, inspect, edit and enable or disable accounts.`,
}

func init() {
	rootCmd.AddCommand(accountCmd)
}
