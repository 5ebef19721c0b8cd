// Command doorman is the operator CLI for the account and application token
// managers. It talks to the database directly; there is no server.
//
//	doorman db migrate
//	doorman account register admin@example.com --admin --password-stdin
//	doorman token create admin@example.com ci
//
// Configuration comes from the environment (and a .env file):
//
//   - DOORMAN_DATABASE_DRIVER: sqlite (default) or postgres
//   - DOORMAN_DATABASE_FILE: SQLite database path
//   - DATABASE_URL: PostgreSQL connection string
//   - DOORMAN_PEPPER_FILE: password pepper, created on first use
//   - DOORMAN_SETTINGS_FILE: YAML feature switches
//   - LOG_LEVEL, LOG_FORMAT, ENV
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aussiebroadwan/doorman/internal/accounts/app"
	"github.com/aussiebroadwan/doorman/internal/accounts/service"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "doorman",
	Short:         "Account and application token administration",
	Version:       app.BuildVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// openApp wires the application for one command and returns a context
// carrying its logger.
func openApp(cmd *cobra.Command) (*app.Application, context.Context, error) {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		return nil, nil, err
	}
	return application, application.Context(cmd.Context()), nil
}

// printError renders every field message of a rejection on its own line.
func printError(err error) {
	var e *service.Error
	if errors.As(err, &e) {
		fmt.Fprintf(os.Stderr, "error: %s\n", e.Kind)
		for _, msg := range e.Messages() {
			fmt.Fprintf(os.Stderr, "  - %s\n", msg)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
