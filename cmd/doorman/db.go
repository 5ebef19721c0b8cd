package main

import "github.com/spf13/cobra"

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the database",
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
