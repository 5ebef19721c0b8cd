package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accountBootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Show whether the next registrant may become admin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		bc, err := a.Accounts.DescribeAdminBootstrapContext(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Signup enabled:             %s\n", yesNo(a.Accounts.CheckSignupAllowed()))
		fmt.Fprintf(out, "Accounts exist:             %s\n", yesNo(bc.HaveAccounts))
		fmt.Fprintf(out, "Admin exists:               %s\n", yesNo(bc.AdminExists))
		fmt.Fprintf(out, "First user becomes admin:   %s\n", yesNo(bc.FirstUserBecomesAdminEnabled))
		return nil
	},
}

func init() {
	accountCmd.AddCommand(accountBootstrapCmd)
}
