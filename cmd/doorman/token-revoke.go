package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke <email|id> <token-id>",
	Short: "Revoke one of an account's application tokens",
	Args:  cobra.ExactArgs(2),
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

		if err := a.Tokens.RevokeToken(ctx, account.ID, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Revoked application token %s\n", args[1])
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenRevokeCmd)
}
