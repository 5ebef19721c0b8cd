package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokenCreateCmd = &cobra.Command{
	Use:   "create <email|id> <application>",
	Short: "Issue a new application token",
	Long: `Issue a new application token labelled <application>.

The secret is printed to stdout once and cannot be shown again.`,
	Args: cobra.ExactArgs(2),
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

		issued, err := a.Tokens.CreateToken(ctx, account.ID, args[1])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Created application token %q (%s)\n", issued.Token.Application, issued.Token.ID)
		fmt.Fprintln(cmd.OutOrStdout(), issued.Secret)
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenCreateCmd)
}
