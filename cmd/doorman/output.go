package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aussiebroadwan/doorman/internal/accounts/app"
	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
	"github.com/aussiebroadwan/doorman/pkg/idx"
	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04:05"

// resolveAccount accepts either an email or an account id.
func resolveAccount(ctx context.Context, a *app.Application, ref string) (domain.Account, error) {
	if strings.Contains(ref, "@") {
		return a.Accounts.GetByEmail(ctx, ref)
	}
	id, err := idx.Parse(ref)
	if err != nil {
		return domain.Account{}, fmt.Errorf("%q is neither an email nor an account id: %w", ref, err)
	}
	return a.Accounts.Get(ctx, id.String())
}

// readSecret returns the value of the named flag or, when that is empty and
// <flag>-stdin is set, the first line of stdin.
func readSecret(cmd *cobra.Command, flag string) (string, error) {
	if secret, _ := cmd.Flags().GetString(flag); secret != "" {
		return secret, nil
	}
	if useStdin, _ := cmd.Flags().GetBool(flag + "-stdin"); !useStdin {
		return "", nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read %s from stdin: %w", flag, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func printAccounts(w io.Writer, accounts ...domain.Account) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tADMIN\tENABLED\tCREATED")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Email, a.DisplayName, yesNo(a.Admin), yesNo(a.Enabled), a.CreatedAt.Format(timeLayout))
	}
	_ = tw.Flush()
}

func printTokens(w io.Writer, tokens ...domain.ApplicationToken) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAPPLICATION\tCREATED")
	for _, t := range tokens {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Application, t.CreatedAt.Format(timeLayout))
	}
	_ = tw.Flush()
}
