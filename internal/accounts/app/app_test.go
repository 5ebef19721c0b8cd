package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
	"github.com/aussiebroadwan/doorman/internal/accounts/settings"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	return Config{
		DatabaseDriver: DriverSQLite,
		DatabaseFile:   filepath.Join(dir, "doorman.db"),
		AutoMigrate:    true,
		PepperFile:     filepath.Join(dir, "pepper"),
		SettingsFile:   filepath.Join(dir, "settings.yml"),
		Env:            "test",
		LogLevel:       "error",
		LogFormat:      "text",
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DOORMAN_DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/doorman")
	t.Setenv("DOORMAN_AUTO_MIGRATE", "false")
	t.Setenv("LOG_FORMAT", "text")

	cfg := LoadConfig()
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, "postgres://localhost/doorman", cfg.DatabaseURL)
	require.False(t, cfg.AutoMigrate)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, "pepper", cfg.PepperFile)
}

func TestGetEnvBoolOrDefault(t *testing.T) {
	t.Setenv("DOORMAN_TEST_BOOL", "nonsense")
	require.True(t, getEnvBoolOrDefault("DOORMAN_TEST_BOOL", true))

	t.Setenv("DOORMAN_TEST_BOOL", "0")
	require.False(t, getEnvBoolOrDefault("DOORMAN_TEST_BOOL", true))
}

func TestOpenStore_Errors(t *testing.T) {
	_, err := OpenStore(Config{DatabaseDriver: "mysql"})
	require.ErrorContains(t, err, "unknown database driver")

	_, err = OpenStore(Config{DatabaseDriver: DriverPostgres})
	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestNew(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SettingsFile, []byte("signup:\n  enabled: false\n"), 0o600))

	a, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	ctx := a.Context(context.Background())

	sys, err := a.Store().Accounts().GetSystemAccount(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.SystemAccountEmail, sys.Email)

	require.False(t, a.Accounts.CheckSignupAllowed())
	require.True(t, a.Settings().Enabled(settings.FeatureFirstUserAdmin))

	res, err := a.Accounts.Register(ctx, domain.Registration{
		Email:          "admin@example.com",
		Secret:         "correct horse",
		RequestedAdmin: true,
	})
	require.NoError(t, err)
	require.True(t, res.Account.Admin)

	_, err = os.Stat(cfg.PepperFile)
	require.NoError(t, err, "pepper file is created on first start")

	// A second start against the same files keeps the same system account.
	require.NoError(t, a.Close())
	b, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	again, err := b.Store().Accounts().GetSystemAccount(ctx)
	require.NoError(t, err)
	require.Equal(t, sys.ID, again.ID)
}
