package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
	"github.com/aussiebroadwan/doorman/internal/accounts/settings"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("first registrant may become admin, later ones may not", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.accounts.Register(ctx, domain.Registration{
			Email:          "First@Example.com ",
			DisplayName:    "First",
			Secret:         "correct horse",
			RequestedAdmin: true,
		})
		require.NoError(t, err)
		require.True(t, first.Account.Admin)
		require.True(t, first.Account.Enabled)
		require.True(t, first.ActiveForAuthentication)
		require.Equal(t, "first@example.com", first.Account.Email)

		second, err := f.accounts.Register(ctx, domain.Registration{
			Email:          "second@example.com",
			Secret:         "correct horse",
			RequestedAdmin: true,
		})
		require.NoError(t, err)
		require.False(t, second.Account.Admin)
	})

	t.Run("admin flag is optional for the first registrant", func(t *testing.T) {
		f := newFixture(t)
		acc := f.register(t, "plain@example.com", false)
		require.False(t, acc.Admin)

		// Still no admin, so the next registrant may ask.
		acc = f.register(t, "boss@example.com", true)
		require.True(t, acc.Admin)
	})

	t.Run("reports every violation at once", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.accounts.Register(ctx, domain.Registration{
			Email:       "not-an-email",
			DisplayName: strings.Repeat("x", 256),
			Secret:      "short",
		})
		e := serviceError(t, err)
		require.ErrorIs(t, err, ErrValidation)
		require.Equal(t, "must be a valid email address", e.Field("email"))
		require.Equal(t, "the length must be no more than 255", e.Field("display_name"))
		require.Equal(t, "the length must be between 8 and 128", e.Field("password"))
		require.Len(t, e.Messages(), 3)
	})

	t.Run("taken email together with a short secret", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "taken@example.com", false)

		_, err := f.accounts.Register(ctx, domain.Registration{
			Email:  "TAKEN@example.com",
			Secret: "short",
		})
		e := serviceError(t, err)
		require.Equal(t, "has already been taken", e.Field("email"))
		require.Equal(t, "the length must be between 8 and 128", e.Field("password"))
		require.Contains(t, e.Messages(), "email has already been taken")
	})

	t.Run("blank fields", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.accounts.Register(ctx, domain.Registration{})
		e := serviceError(t, err)
		require.Equal(t, "cannot be blank", e.Field("email"))
		require.Equal(t, "cannot be blank", e.Field("password"))
	})

	t.Run("system account email is reserved", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.accounts.EnsureSystemAccount(ctx)
		require.NoError(t, err)

		_, err = f.accounts.Register(ctx, domain.Registration{
			Email:  domain.SystemAccountEmail,
			Secret: "correct horse",
		})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("system account email is reserved before the system account exists", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.accounts.Register(ctx, domain.Registration{
			Email:  strings.ToUpper(domain.SystemAccountEmail),
			Secret: "correct horse",
		})
		e := serviceError(t, err)
		require.ErrorIs(t, err, ErrValidation)
		require.Equal(t, "is reserved", e.Field("email"))

		sys, err := f.accounts.EnsureSystemAccount(ctx)
		require.NoError(t, err)
		require.True(t, sys.System)
	})
}

func TestRegister_ConcurrentFirstRegistrants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.accounts.Register(ctx, domain.Registration{
				Email:          fmt.Sprintf("racer%d@example.com", i),
				Secret:         "correct horse",
				RequestedAdmin: true,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	admins, err := f.store.Accounts().CountAdmins(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, admins)
}

func TestCheckSignupAllowed(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.accounts.CheckSignupAllowed())

	// Read per call, so a flag flip is seen immediately.
	f.flags[settings.FeatureSignup] = false
	require.False(t, f.accounts.CheckSignupAllowed())
}

func TestDescribeAdminBootstrapContext(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.accounts.EnsureSystemAccount(ctx)
	require.NoError(t, err)

	bc, err := f.accounts.DescribeAdminBootstrapContext(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.BootstrapContext{FirstUserBecomesAdminEnabled: true}, bc)

	f.register(t, "user@example.com", false)
	bc, err = f.accounts.DescribeAdminBootstrapContext(ctx)
	require.NoError(t, err)
	require.True(t, bc.HaveAccounts)
	require.False(t, bc.AdminExists)

	f.register(t, "admin@example.com", true)
	f.flags[settings.FeatureFirstUserAdmin] = false
	bc, err = f.accounts.DescribeAdminBootstrapContext(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.BootstrapContext{HaveAccounts: true, AdminExists: true}, bc)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("profile update needs no secret", func(t *testing.T) {
		f := newFixture(t)
		acc := f.register(t, "alice@example.com", false)

		res, err := f.accounts.Update(ctx, acc.ID, domain.AccountUpdate{
			ProfileUpdate: domain.ProfileUpdate{Email: "Alice@New.example.com", DisplayName: "Alice"},
		})
		require.NoError(t, err)
		require.False(t, res.SessionRefresh)
		require.Equal(t, "alice@new.example.com", res.Account.Email)
		require.Equal(t, "Alice", res.Account.DisplayName)
		require.Equal(t, acc.PasswordHash, res.Account.PasswordHash)
	})

	t.Run("profile email must be free", func(t *testing.T) {
		f := newFixture(t)
		acc := f.register(t, "alice@example.com", false)
		f.register(t, "bob@example.com", false)

		_, err := f.accounts.UpdateProfile(ctx, acc.ID, domain.ProfileUpdate{Email: "bob@example.com"})
		e := serviceError(t, err)
		require.Equal(t, "has already been taken", e.Field("email"))

		// Keeping one's own email is fine.
		_, err = f.accounts.UpdateProfile(ctx, acc.ID, domain.ProfileUpdate{Email: "alice@example.com", DisplayName: "A"})
		require.NoError(t, err)
	})

	t.Run("any credential field routes to the verifying path", func(t *testing.T) {
		f := newFixture(t)
		acc := f.register(t, "alice@example.com", false)

		_, err := f.accounts.Update(ctx, acc.ID, domain.AccountUpdate{
			ProfileUpdate:    domain.ProfileUpdate{Email: "mallory@example.com"},
			CredentialUpdate: domain.CredentialUpdate{NewSecretConfirmation: "whatever"},
		})
		e := serviceError(t, err)
		require.Equal(t, "cannot be blank", e.Field("current_password"))
		require.Equal(t, "cannot be blank", e.Field("password"))

		got, err := f.accounts.Get(ctx, acc.ID)
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", got.Email, "profile fields are ignored on the credential path")
	})

	t.Run("credential update reports every problem", func(t *testing.T) {
		f := newFixture(t)
		acc := f.register(t, "alice@example.com", false)

		_, err := f.accounts.UpdateCredential(ctx, acc.ID, domain.CredentialUpdate{
			CurrentSecret:         "wrong secret",
			NewSecret:             "short",
			NewSecretConfirmation: "shorter",
		})
		e := serviceError(t, err)
		require.ErrorIs(t, err, ErrValidation)
		require.Equal(t, "is invalid", e.Field("current_password"))
		require.Equal(t, "the length must be between 8 and 128", e.Field("password"))
		require.Equal(t, "doesn't match password", e.Field("password_confirmation"))
	})

	t.Run("credential update succeeds with the right secret", func(t *testing.T) {
		f := newFixture(t)
		acc := f.register(t, "alice@example.com", false)

		res, err := f.accounts.Update(ctx, acc.ID, domain.AccountUpdate{
			CredentialUpdate: domain.CredentialUpdate{
				CurrentSecret:         "correct horse",
				NewSecret:             "battery staple",
				NewSecretConfirmation: "battery staple",
			},
		})
		require.NoError(t, err)
		require.True(t, res.SessionRefresh)
		require.True(t, f.accounts.Credentials.Verify(res.Account.PasswordHash, "battery staple"))
		require.False(t, f.accounts.Credentials.Verify(res.Account.PasswordHash, "correct horse"))
	})

	t.Run("blank email keeps the current one", func(t *testing.T) {
		f := newFixture(t)
		acc := f.register(t, "alice@example.com", false)

		res, err := f.accounts.UpdateProfile(ctx, acc.ID, domain.ProfileUpdate{DisplayName: "Alice"})
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", res.Account.Email)
		require.Equal(t, "Alice", res.Account.DisplayName)
	})

	t.Run("profile cannot take the system account email", func(t *testing.T) {
		f := newFixture(t)
		acc := f.register(t, "alice@example.com", false)

		_, err := f.accounts.UpdateProfile(ctx, acc.ID, domain.ProfileUpdate{Email: domain.SystemAccountEmail})
		e := serviceError(t, err)
		require.ErrorIs(t, err, ErrValidation)
		require.Equal(t, "is reserved", e.Field("email"))
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.accounts.UpdateProfile(ctx, "missing", domain.ProfileUpdate{Email: "x@example.com"})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestToggleEnabled(t *testing.T) {
	ctx := context.Background()

	t.Run("admin disables and re-enables another account", func(t *testing.T) {
		f := newFixture(t)
		admin := f.register(t, "admin@example.com", true)
		user := f.register(t, "user@example.com", false)

		res, err := f.accounts.ToggleEnabled(ctx, admin.ID, user.ID)
		require.NoError(t, err)
		require.False(t, res.Account.Enabled)
		require.False(t, res.SelfDisabled)
		require.False(t, res.ActiveForAuthentication)

		res, err = f.accounts.ToggleEnabled(ctx, admin.ID, user.ID)
		require.NoError(t, err)
		require.True(t, res.Account.Enabled)
		require.True(t, res.ActiveForAuthentication)
	})

	t.Run("set enabled is idempotent", func(t *testing.T) {
		f := newFixture(t)
		admin := f.register(t, "admin@example.com", true)
		user := f.register(t, "user@example.com", false)

		for range 3 {
			res, err := f.accounts.SetEnabled(ctx, admin.ID, user.ID, false)
			require.NoError(t, err)
			require.False(t, res.Account.Enabled)
		}
	})

	t.Run("self disable is signalled", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "admin@example.com", true)
		user := f.register(t, "user@example.com", false)

		res, err := f.accounts.ToggleEnabled(ctx, user.ID, user.ID)
		require.NoError(t, err)
		require.True(t, res.SelfDisabled)
	})

	t.Run("last enabled admin cannot be disabled by default", func(t *testing.T) {
		f := newFixture(t)
		admin := f.register(t, "admin@example.com", true)

		_, err := f.accounts.ToggleEnabled(ctx, admin.ID, admin.ID)
		require.ErrorIs(t, err, ErrForbidden)

		got, err := f.accounts.Get(ctx, admin.ID)
		require.NoError(t, err)
		require.True(t, got.Enabled)

		f.flags[settings.FeatureLastAdminDisable] = true
		res, err := f.accounts.ToggleEnabled(ctx, admin.ID, admin.ID)
		require.NoError(t, err)
		require.True(t, res.SelfDisabled)
	})

	t.Run("concurrent disables keep one admin enabled", func(t *testing.T) {
		f := newFixture(t)
		a := f.register(t, "a@example.com", true)

		// Only the first registrant becomes admin through signup, so promote
		// a second one directly in the store.
		b := f.register(t, "b@example.com", false)
		_, err := f.store.DB().ExecContext(ctx, `UPDATE accounts SET admin = 1 WHERE id = ?`, b.ID)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for _, id := range []string{a.ID, b.ID} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = f.accounts.SetEnabled(ctx, id, id, false)
			}()
		}
		wg.Wait()

		n, err := f.store.Accounts().CountEnabledAdmins(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("system account cannot be toggled", func(t *testing.T) {
		f := newFixture(t)
		admin := f.register(t, "admin@example.com", true)
		sys, err := f.accounts.EnsureSystemAccount(ctx)
		require.NoError(t, err)

		_, err = f.accounts.ToggleEnabled(ctx, admin.ID, sys.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown target", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.accounts.ToggleEnabled(ctx, "a", "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDestroy(t *testing.T) {
	f := newFixture(t)
	acc := f.register(t, "alice@example.com", false)

	for _, id := range []string{acc.ID, "", "missing"} {
		require.ErrorIs(t, f.accounts.Destroy(context.Background(), id), ErrNotSupported)
	}

	_, err := f.accounts.Get(context.Background(), acc.ID)
	require.NoError(t, err)
}

func TestEnsureSystemAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.accounts.EnsureSystemAccount(ctx)
	require.NoError(t, err)
	require.True(t, first.System)
	require.False(t, first.Admin)
	require.False(t, first.ActiveForAuthentication())

	again, err := f.accounts.EnsureSystemAccount(ctx)
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)

	list, err := f.accounts.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}
