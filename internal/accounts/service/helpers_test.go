package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
	"github.com/aussiebroadwan/doorman/internal/accounts/settings"
	"github.com/aussiebroadwan/doorman/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/doorman/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

const testPepper = "service-test-pepper"

type fixture struct {
	store    *sqlite.Store
	flags    settings.Static
	accounts *AccountService
	tokens   *ApplicationTokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "doorman.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	flags := settings.Static{}
	hasher := cryptox.NewHasher(testPepper)

	return &fixture{
		store: s,
		flags: flags,
		accounts: &AccountService{
			Store:       s,
			Policy:      AccountPolicy{Flags: flags},
			Credentials: hasher,
		},
		tokens: &ApplicationTokenService{
			Store:       s,
			Credentials: hasher,
		},
	}
}

func (f *fixture) register(t *testing.T, email string, admin bool) domain.Account {
	t.Helper()

	res, err := f.accounts.Register(context.Background(), domain.Registration{
		Email:          email,
		DisplayName:    email,
		Secret:         "correct horse",
		RequestedAdmin: admin,
	})
	require.NoError(t, err)
	return res.Account
}

// serviceError asserts err is an *Error and returns it.
func serviceError(t *testing.T, err error) *Error {
	t.Helper()

	var e *Error
	require.ErrorAs(t, err, &e)
	return e
}
