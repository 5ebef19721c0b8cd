package main

import "github.com/spf13/cobra"

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts in registration order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		accounts, err := a.Accounts.List(ctx)
		if err != nil {
			return err
		}
		printAccounts(cmd.OutOrStdout(), accounts...)
		return nil
	},
}

func init() {
	accountCmd.AddCommand(accountListCmd)
}
