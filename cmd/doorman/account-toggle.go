package main

import (
	"fmt"

	"github.com/aussiebroadwan/doorman/internal/accounts/service"
	"github.com/spf13/cobra"
)

var accountToggleCmd = &cobra.Command{
	Use:   "toggle <email|id>",
	Short: "Flip an account between enabled and disabled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEnable(cmd, args[0], nil)
	},
}

var accountEnableCmd = &cobra.Command{
	Use:   "enable <email|id>",
	Short: "Enable an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on := true
		return runEnable(cmd, args[0], &on)
	},
}

var accountDisableCmd = &cobra.Command{
	Use:   "disable <email|id>",
	Short: "Disable an account",
	Long: `Disable an account.

Disabling the last enabled admin is refused unless the last_admin_disable
feature is switched on.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		off := false
		return runEnable(cmd, args[0], &off)
	},
}

// runEnable toggles when want is nil and sets the state otherwise.
func runEnable(cmd *cobra.Command, ref string, want *bool) error {
	a, ctx, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	target, err := resolveAccount(ctx, a, ref)
	if err != nil {
		return err
	}

	actingID := ""
	if as, _ := cmd.Flags().GetString("as"); as != "" {
		acting, err := resolveAccount(ctx, a, as)
		if err != nil {
			return err
		}
		actingID = acting.ID
	}

	var res service.ToggleResult
	if want == nil {
		res, err = a.Accounts.ToggleEnabled(ctx, actingID, target.ID)
	} else {
		res, err = a.Accounts.SetEnabled(ctx, actingID, target.ID, *want)
	}
	if err != nil {
		return err
	}

	if res.SelfDisabled {
		fmt.Fprintln(cmd.ErrOrStderr(), "note: the acting account disabled itself; its sessions must be ended")
	}
	printAccounts(cmd.OutOrStdout(), res.Account)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{accountToggleCmd, accountEnableCmd, accountDisableCmd} {
		c.Flags().String("as", "", "Email or id of the account performing the change")
		accountCmd.AddCommand(c)
	}
}
