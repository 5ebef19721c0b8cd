package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
	"github.com/aussiebroadwan/doorman/internal/accounts/store"
	"github.com/aussiebroadwan/doorman/pkg/idx"
	"github.com/aussiebroadwan/doorman/pkg/slogx"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	SecretMinLength = 8
	SecretMaxLength = 128
	FieldMaxLength  = 255
)

const (
	msgTaken    = "has already been taken"
	msgInvalid  = "is invalid"
	msgMismatch = "doesn't match password"
	msgReserved = "is reserved"
)

type RegistrationResult struct {
	Account domain.Account
	// ActiveForAuthentication tells the caller whether it may open a session
	// for the new account. Registration never signs anyone in.
	ActiveForAuthentication bool
}

type UpdateResult struct {
	Account domain.Account
	// SessionRefresh is set after a credential change: the caller should
	// re-issue the session of the account without asking it to sign in again.
	SessionRefresh bool
}

type ToggleResult struct {
	Account domain.Account
	// SelfDisabled is set when the acting account disabled itself; the
	// caller must end that account's sessions.
	SelfDisabled            bool
	ActiveForAuthentication bool
}

type AccountService struct {
	Store       store.Store
	Policy      AccountPolicy
	Credentials Credentials
}

func (s *AccountService) CheckSignupAllowed() bool {
	return s.Policy.SignupEnabled()
}

func (s *AccountService) DescribeAdminBootstrapContext(ctx context.Context) (domain.BootstrapContext, error) {
	accounts := s.Store.Accounts()

	total, err := accounts.CountAccounts(ctx)
	if err != nil {
		return domain.BootstrapContext{}, fmt.Errorf("count accounts: %w", err)
	}
	admins, err := accounts.CountAdmins(ctx)
	if err != nil {
		return domain.BootstrapContext{}, fmt.Errorf("count admins: %w", err)
	}

	return domain.BootstrapContext{
		HaveAccounts:                 total > 0,
		AdminExists:                  admins > 0,
		FirstUserBecomesAdminEnabled: s.Policy.AdminBootstrapFeatureEnabled(),
	}, nil
}

func validateRegistration(r *domain.Registration) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, validation.RuneLength(0, FieldMaxLength), is.Email, reservedEmail()),
		validation.Field(&r.DisplayName, validation.RuneLength(0, FieldMaxLength)),
		validation.Field(&r.Secret, validation.Required, validation.RuneLength(SecretMinLength, SecretMaxLength)),
	)
}

// Register creates an enabled account. The admin flag is only honoured
// while no admin exists; the admin count and the insert share one
// transaction so two first registrants cannot both become admin.
func (s *AccountService) Register(ctx context.Context, reg domain.Registration) (RegistrationResult, error) {
	l := slogx.FromContext(ctx)

	reg.Email = domain.NormalizeEmail(reg.Email)
	reg.DisplayName = strings.TrimSpace(reg.DisplayName)

	fields := validation.Errors{}
	if err := merge(fields, validateRegistration(&reg)); err != nil {
		return RegistrationResult{}, err
	}

	var hash string
	if _, bad := fields["password"]; !bad {
		var err error
		if hash, err = s.Credentials.Hash(reg.Secret); err != nil {
			l.Error("failed to hash secret", slog.Any("error", err))
			return RegistrationResult{}, fmt.Errorf("hash secret: %w", err)
		}
	}

	var account domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		accounts := tx.Accounts()
		if err := accounts.LockTable(ctx); err != nil {
			return err
		}

		adminCount, err := accounts.CountAdmins(ctx)
		if err != nil {
			return err
		}
		reg = s.Policy.ComputeSignupFieldMask(adminCount).Apply(reg)

		if _, bad := fields["email"]; !bad {
			_, err := accounts.GetAccountByEmail(ctx, reg.Email)
			switch {
			case err == nil:
				fields["email"] = errors.New(msgTaken)
			case !errors.Is(err, store.ErrNotFound):
				return err
			}
		}
		if len(fields) > 0 {
			return newError(ErrValidation, fields)
		}

		account = domain.Account{
			ID:           idx.New().String(),
			Email:        reg.Email,
			DisplayName:  reg.DisplayName,
			PasswordHash: hash,
			Admin:        reg.RequestedAdmin,
			Enabled:      true,
		}
		if err := accounts.CreateAccount(ctx, account); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fieldError(ErrValidation, "email", msgTaken)
			}
			return err
		}

		account, err = accounts.GetAccountByID(ctx, account.ID)
		return err
	})
	if err != nil {
		return RegistrationResult{}, s.reject(l, "registration rejected", err)
	}

	l.Info("account registered",
		slog.String("account_id", account.ID),
		slog.Bool("admin", account.Admin))

	return RegistrationResult{
		Account:                 account,
		ActiveForAuthentication: account.ActiveForAuthentication(),
	}, nil
}

// List returns every non-system account in creation order.
func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.Store.Accounts().ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (domain.Account, error) {
	account, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if err != nil {
		return domain.Account{}, notFound(err, "account")
	}
	return account, nil
}

// GetByEmail looks an account up by its (normalised) email.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	account, err := s.Store.Accounts().GetAccountByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return domain.Account{}, notFound(err, "account")
	}
	return account, nil
}

// Update routes a raw edit request. Anything touching a credential field
// goes through UpdateCredential and the profile fields are ignored.
func (s *AccountService) Update(ctx context.Context, id string, req domain.AccountUpdate) (UpdateResult, error) {
	if req.TouchesCredential() {
		return s.UpdateCredential(ctx, id, req.CredentialUpdate)
	}
	return s.UpdateProfile(ctx, id, req.ProfileUpdate)
}

// reservedEmail keeps the system account's address out of human hands, even
// before EnsureSystemAccount has run.
func reservedEmail() validation.Rule {
	return validation.NotIn(domain.SystemAccountEmail).Error(msgReserved)
}

func validateProfile(p *domain.ProfileUpdate) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Email, validation.RuneLength(0, FieldMaxLength), is.Email, reservedEmail()),
		validation.Field(&p.DisplayName, validation.RuneLength(0, FieldMaxLength)),
	)
}

// UpdateProfile changes email and display name. The current secret is not
// required. A blank email keeps the current one; the display name is always
// replaced, so a blank one clears it.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, req domain.ProfileUpdate) (UpdateResult, error) {
	l := slogx.FromContext(ctx).With(slog.String("account_id", id))

	req.Email = domain.NormalizeEmail(req.Email)
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	fields := validation.Errors{}
	if err := merge(fields, validateProfile(&req)); err != nil {
		return UpdateResult{}, err
	}

	var account domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		accounts := tx.Accounts()
		if err := accounts.LockAccount(ctx, id); err != nil {
			return err
		}

		current, err := accounts.GetAccountByID(ctx, id)
		if err != nil {
			return notFound(err, "account")
		}
		if current.System {
			return fieldError(ErrForbidden, BaseField, "the system account cannot be edited")
		}
		if req.Email == "" {
			req.Email = current.Email
		}

		if _, bad := fields["email"]; !bad && req.Email != current.Email {
			other, err := accounts.GetAccountByEmail(ctx, req.Email)
			switch {
			case err == nil && other.ID != id:
				fields["email"] = errors.New(msgTaken)
			case err != nil && !errors.Is(err, store.ErrNotFound):
				return err
			}
		}
		if len(fields) > 0 {
			return newError(ErrValidation, fields)
		}

		if err := accounts.UpdateProfile(ctx, id, req.Email, req.DisplayName); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fieldError(ErrValidation, "email", msgTaken)
			}
			return err
		}

		account, err = accounts.GetAccountByID(ctx, id)
		return err
	})
	if err != nil {
		return UpdateResult{}, s.reject(l, "profile update rejected", err)
	}

	l.Info("profile updated")
	return UpdateResult{Account: account}, nil
}

func validateCredential(c *domain.CredentialUpdate) error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CurrentSecret, validation.Required),
		validation.Field(&c.NewSecret, validation.Required, validation.RuneLength(SecretMinLength, SecretMaxLength)),
		validation.Field(&c.NewSecretConfirmation, validation.Required, validation.By(equals(c.NewSecret))),
	)
}

func equals(want string) validation.RuleFunc {
	return func(value interface{}) error {
		if s, _ := value.(string); s != want {
			return errors.New(msgMismatch)
		}
		return nil
	}
}

// UpdateCredential replaces the secret after checking the current one. All
// problems (wrong current secret, weak or unconfirmed new secret) are
// reported together.
func (s *AccountService) UpdateCredential(ctx context.Context, id string, req domain.CredentialUpdate) (UpdateResult, error) {
	l := slogx.FromContext(ctx).With(slog.String("account_id", id))

	fields := validation.Errors{}
	if err := merge(fields, validateCredential(&req)); err != nil {
		return UpdateResult{}, err
	}

	var account domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		accounts := tx.Accounts()
		if err := accounts.LockAccount(ctx, id); err != nil {
			return err
		}

		current, err := accounts.GetAccountByID(ctx, id)
		if err != nil {
			return notFound(err, "account")
		}
		if current.System {
			return fieldError(ErrForbidden, BaseField, "the system account cannot be edited")
		}

		if req.CurrentSecret != "" && !s.Credentials.Verify(current.PasswordHash, req.CurrentSecret) {
			fields["current_password"] = errors.New(msgInvalid)
		}
		if len(fields) > 0 {
			return newError(ErrValidation, fields)
		}

		hash, err := s.Credentials.Hash(req.NewSecret)
		if err != nil {
			return fmt.Errorf("hash secret: %w", err)
		}
		if err := accounts.UpdatePasswordHash(ctx, id, hash); err != nil {
			return err
		}

		account, err = accounts.GetAccountByID(ctx, id)
		return err
	})
	if err != nil {
		return UpdateResult{}, s.reject(l, "credential update rejected", err)
	}

	l.Info("credential updated")
	return UpdateResult{Account: account, SessionRefresh: true}, nil
}

// ToggleEnabled flips the enabled flag of target. Whether actingID may do
// this at all is the caller's decision; here it only drives SelfDisabled.
func (s *AccountService) ToggleEnabled(ctx context.Context, actingID, targetID string) (ToggleResult, error) {
	return s.transition(ctx, actingID, targetID, true, func(enabled bool) bool { return !enabled })
}

// SetEnabled moves target to the given state. Repeating it is a no-op.
func (s *AccountService) SetEnabled(ctx context.Context, actingID, targetID string, enabled bool) (ToggleResult, error) {
	return s.transition(ctx, actingID, targetID, !enabled, func(bool) bool { return enabled })
}

// transition is the read-modify-write shared by ToggleEnabled and
// SetEnabled. The target row is locked before the table, the same order
// every row-level writer follows, so it cannot deadlock against the update
// paths, Register or another transition.
func (s *AccountService) transition(
	ctx context.Context,
	actingID, targetID string,
	mayDisable bool,
	next func(enabled bool) bool,
) (ToggleResult, error) {
	l := slogx.FromContext(ctx).With(
		slog.String("acting_id", actingID),
		slog.String("target_id", targetID),
	)

	var result ToggleResult
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		accounts := tx.Accounts()
		if err := accounts.LockAccount(ctx, targetID); err != nil {
			return err
		}
		if mayDisable {
			if err := accounts.LockTable(ctx); err != nil {
				return err
			}
		}

		target, err := accounts.GetAccountByID(ctx, targetID)
		if err != nil {
			return notFound(err, "account")
		}

		want := next(target.Enabled)
		if want {
			err = s.Policy.CheckEnable(target)
		} else {
			enabledAdmins := 0
			if target.Admin && target.Enabled {
				if enabledAdmins, err = accounts.CountEnabledAdmins(ctx); err != nil {
					return err
				}
			}
			err = s.Policy.CheckDisable(target, enabledAdmins)
		}
		if err != nil {
			return err
		}

		if want != target.Enabled {
			if err := accounts.SetEnabled(ctx, targetID, want); err != nil {
				return err
			}
			if target, err = accounts.GetAccountByID(ctx, targetID); err != nil {
				return err
			}
		}

		result = ToggleResult{
			Account:                 target,
			SelfDisabled:            actingID == target.ID && !target.Enabled,
			ActiveForAuthentication: target.ActiveForAuthentication(),
		}
		return nil
	})
	if err != nil {
		return ToggleResult{}, s.reject(l, "enable/disable rejected", err)
	}

	l.Info("account enabled state changed",
		slog.Bool("enabled", result.Account.Enabled),
		slog.Bool("self_disabled", result.SelfDisabled))
	return result, nil
}

// Destroy always fails: accounts are disabled, never deleted.
func (s *AccountService) Destroy(ctx context.Context, id string) error {
	slogx.FromContext(ctx).Warn("account deletion attempted", slog.String("account_id", id))
	return fieldError(ErrNotSupported, BaseField, "accounts cannot be deleted, disable them instead")
}

// EnsureSystemAccount creates the reserved system account when it is
// missing. Its secret is random and never revealed.
func (s *AccountService) EnsureSystemAccount(ctx context.Context) (domain.Account, error) {
	l := slogx.FromContext(ctx)
	accounts := s.Store.Accounts()

	account, err := accounts.GetSystemAccount(ctx)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, fmt.Errorf("get system account: %w", err)
	}

	secret, err := s.Credentials.Random()
	if err != nil {
		return domain.Account{}, fmt.Errorf("generate system secret: %w", err)
	}
	hash, err := s.Credentials.Hash(secret)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash system secret: %w", err)
	}

	account = domain.Account{
		ID:           idx.New().String(),
		Email:        domain.SystemAccountEmail,
		DisplayName:  "System",
		PasswordHash: hash,
		Enabled:      true,
		System:       true,
	}
	if err := accounts.CreateAccount(ctx, account); err != nil && !errors.Is(err, store.ErrAlreadyExists) {
		return domain.Account{}, fmt.Errorf("create system account: %w", err)
	}

	// Another process may have won the race; either way read back the row.
	account, err = accounts.GetSystemAccount(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("get system account: %w", err)
	}

	l.Info("system account ready", slog.String("account_id", account.ID))
	return account, nil
}

// reject logs err at the right level and returns it with infrastructure
// failures wrapped.
func (s *AccountService) reject(l *slog.Logger, msg string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		l.Warn(msg, slog.Any("reasons", e.Messages()))
		return e
	}
	l.Error(msg, slog.Any("error", err))
	return fmt.Errorf("%s: %w", msg, err)
}

func notFound(err error, what string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fieldError(ErrNotFound, BaseField, what+" not found")
	}
	return err
}
