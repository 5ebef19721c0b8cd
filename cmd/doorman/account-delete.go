package main

import "github.com/spf13/cobra"

var accountDeleteCmd = &cobra.Command{
	Use:   "delete <email|id>",
	Short: "Not supported: accounts are disabled, never deleted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		return a.Accounts.Destroy(ctx, args[0])
	},
}

func init() {
	accountCmd.AddCommand(accountDeleteCmd)
}
