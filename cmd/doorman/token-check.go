package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokenCheckCmd = &cobra.Command{
	Use:   "check <email>",
	Short: "Check an email and application token secret",
	Long: `Check an email and application token secret the way an API login would.

The secret is read from stdin.

Example:
  doorman token create alice@example.com ci | doorman token check alice@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		secret, err := readSecret(cmd, "secret")
		if err != nil {
			return err
		}

		account, token, err := a.Tokens.Authenticate(ctx, args[0], secret)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %s via %q\n", account.Email, token.Application)
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenCheckCmd)
	tokenCheckCmd.Flags().String("secret", "", "Token secret")
	tokenCheckCmd.Flags().Bool("secret-stdin", true, "Read the token secret from stdin")
}
