package main

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
	"github.com/spf13/cobra"
)

var accountRegisterCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Register a new account",
	Long: `Register a new, enabled account.

The --admin flag is only honoured while no admin exists, so the first
registrant can bootstrap the installation. Registration is refused when the
signup feature is switched off, unless --force is given.

Example:
  echo 'correct horse' | doorman account register admin@example.com --admin --password-stdin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if force, _ := cmd.Flags().GetBool("force"); !force && !a.Accounts.CheckSignupAllowed() {
			return errors.New("signup is disabled (use --force to override)")
		}

		secret, err := readSecret(cmd, "password")
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		admin, _ := cmd.Flags().GetBool("admin")

		res, err := a.Accounts.Register(ctx, domain.Registration{
			Email:          args[0],
			DisplayName:    name,
			Secret:         secret,
			RequestedAdmin: admin,
		})
		if err != nil {
			return err
		}

		if admin && !res.Account.Admin {
			fmt.Fprintln(cmd.ErrOrStderr(), "note: an admin already exists, the account was created without admin rights")
		}
		printAccounts(cmd.OutOrStdout(), res.Account)
		return nil
	},
}

func init() {
	accountCmd.AddCommand(accountRegisterCmd)
	accountRegisterCmd.Flags().String("name", "", "Display name")
	accountRegisterCmd.Flags().String("password", "", "Password (prefer --password-stdin)")
	accountRegisterCmd.Flags().Bool("password-stdin", false, "Read the password from stdin")
	accountRegisterCmd.Flags().Bool("admin", false, "Request admin rights (only honoured for the first admin)")
	accountRegisterCmd.Flags().Bool("force", false, "Register even when signup is disabled")
}
