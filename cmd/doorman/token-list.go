package main

import (
	"fmt"

	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
	"github.com/spf13/cobra"
)

var tokenListCmd = &cobra.Command{
	Use:   "list <email|id>",
	Short: "List an account's application tokens",
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
		more, err := a.Tokens.CanCreateMore(ctx, account.ID)
		if err != nil {
			return err
		}

		printTokens(cmd.OutOrStdout(), tokens...)
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d used, can create more: %s\n",
			len(tokens), domain.ApplicationTokensMax, yesNo(more))
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenListCmd)
}
