package main

import (
	"fmt"

	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
	"github.com/spf13/cobra"
)

var accountUpdateCmd = &cobra.Command{
	Use:   "update <email|id>",
	Short: "Edit an account's profile or password",
	Long: `Edit an account.

Profile fields (--email, --name) are changed without a password check. As
soon as any password flag is given the request is treated as a password
change: the current password must be supplied and profile flags are ignored.

Examples:
  doorman account update alice@example.com --name "Alice Liddell"
  doorman account update alice@example.com --current-password old --password new --password-confirmation new`,
	Args: cobra.ExactArgs(1),
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

		var req domain.AccountUpdate
		req.Email = account.Email
		req.DisplayName = account.DisplayName
		if cmd.Flags().Changed("email") {
			req.Email, _ = cmd.Flags().GetString("email")
		}
		if cmd.Flags().Changed("name") {
			req.DisplayName, _ = cmd.Flags().GetString("name")
		}
		req.CurrentSecret, _ = cmd.Flags().GetString("current-password")
		req.NewSecret, _ = cmd.Flags().GetString("password")
		req.NewSecretConfirmation, _ = cmd.Flags().GetString("password-confirmation")

		res, err := a.Accounts.Update(ctx, account.ID, req)
		if err != nil {
			return err
		}

		if res.SessionRefresh {
			fmt.Fprintln(cmd.ErrOrStderr(), "password updated")
		}
		printAccounts(cmd.OutOrStdout(), res.Account)
		return nil
	},
}

func init() {
	accountCmd.AddCommand(accountUpdateCmd)
	accountUpdateCmd.Flags().String("email", "", "New email")
	accountUpdateCmd.Flags().String("name", "", "New display name")
	accountUpdateCmd.Flags().String("current-password", "", "Current password (required for a password change)")
	accountUpdateCmd.Flags().String("password", "", "New password")
	accountUpdateCmd.Flags().String("password-confirmation", "", "New password, again")
}
