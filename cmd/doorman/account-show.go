package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accountShowCmd = &cobra.Command{
	Use:   "show <email|id>",
	Short: "Show one account and its application tokens",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		account, err := resolveAccount(ctx, a, args[0])
		if err != nil {
			return err
		}
		tokens, err := a.Tokens.ListTokens(ctx, account.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printAccounts(out, account)
		fmt.Fprintf(out, "\nActive for authentication: %s\n", yesNo(account.ActiveForAuthentication()))
		fmt.Fprintf(out, "Application tokens: %d\n\n", len(tokens))
		if len(tokens) > 0 {
			printTokens(out, tokens...)
		}
		return nil
	},
}

func init() {
	accountCmd.AddCommand(accountShowCmd)
}
