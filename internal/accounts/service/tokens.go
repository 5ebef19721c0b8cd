package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
	"github.com/aussiebroadwan/doorman/internal/accounts/store"
	"github.com/aussiebroadwan/doorman/pkg/idx"
	"github.com/aussiebroadwan/doorman/pkg/slogx"

	validation "github.com/go-ozzo/ozzo-validation"
)

var msgQuota = fmt.Sprintf("cannot create more than %d application tokens", domain.ApplicationTokensMax)

type ApplicationTokenService struct {
	Store       store.Store
	Credentials Credentials
}

type tokenRequest struct {
	Application string `json:"application"`
}

// ListTokens returns the tokens of an account in creation order.
func (s *ApplicationTokenService) ListTokens(ctx context.Context, accountID string) ([]domain.ApplicationToken, error) {
	tokens, err := s.Store.ApplicationTokens().ListApplicationTokens(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list application tokens: %w", err)
	}
	return tokens, nil
}

// CanCreateMore is advisory, for disabling a "create" control. CreateToken
// makes the binding decision.
func (s *ApplicationTokenService) CanCreateMore(ctx context.Context, accountID string) (bool, error) {
	n, err := s.Store.ApplicationTokens().CountApplicationTokens(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("count application tokens: %w", err)
	}
	return n < domain.ApplicationTokensMax, nil
}

// CreateToken issues a token labelled application. The quota and label
// checks run under the account's row lock together with the insert, and the
// (account, application) unique constraint backs the label check.
func (s *ApplicationTokenService) CreateToken(ctx context.Context, accountID, application string) (domain.IssuedToken, error) {
	l := slogx.FromContext(ctx).With(
		slog.String("account_id", accountID),
		slog.String("application", application),
	)

	req := tokenRequest{Application: application}
	if err := validationError(validation.ValidateStruct(&req,
		validation.Field(&req.Application, validation.Required, validation.RuneLength(0, FieldMaxLength)),
	)); err != nil {
		l.Warn("application token rejected", slog.Any("error", err))
		return domain.IssuedToken{}, err
	}

	secret, err := s.Credentials.Random()
	if err != nil {
		l.Error("failed to generate token secret", slog.Any("error", err))
		return domain.IssuedToken{}, fmt.Errorf("generate token secret: %w", err)
	}

	token := domain.ApplicationToken{
		ID:          idx.New().String(),
		AccountID:   accountID,
		Application: application,
		TokenHash:   s.Credentials.Fingerprint(secret),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().LockAccount(ctx, accountID); err != nil {
			return err
		}
		account, err := tx.Accounts().GetAccountByID(ctx, accountID)
		if err != nil {
			return notFound(err, "account")
		}
		if account.System {
			return fieldError(ErrForbidden, BaseField, "the system account cannot hold application tokens")
		}

		tokens := tx.ApplicationTokens()
		count, err := tokens.CountApplicationTokens(ctx, accountID)
		if err != nil {
			return err
		}
		taken, err := tokens.ApplicationTokenExists(ctx, accountID, application)
		if err != nil {
			return err
		}

		if rej := quotaOrLabel(count, taken); rej != nil {
			return rej
		}

		if err := tokens.CreateApplicationToken(ctx, token); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return quotaOrLabel(0, true)
			}
			return err
		}

		token, err = tokens.GetApplicationTokenByID(ctx, token.ID)
		return err
	})
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			l.Warn("application token rejected", slog.Any("reasons", e.Messages()))
			return domain.IssuedToken{}, e
		}
		l.Error("failed to create application token", slog.Any("error", err))
		return domain.IssuedToken{}, fmt.Errorf("create application token: %w", err)
	}

	l.Info("application token created", slog.String("token_id", token.ID))
	return domain.IssuedToken{Token: token, Secret: secret}, nil
}

// quotaOrLabel builds the rejection for a full quota and/or a taken label,
// carrying both messages when both apply.
func quotaOrLabel(count int, taken bool) *Error {
	full := count >= domain.ApplicationTokensMax
	if !full && !taken {
		return nil
	}

	fields := validation.Errors{}
	var e *Error
	switch {
	case full && taken:
		e = newError(ErrQuotaExceeded, fields)
		e.Related = []error{ErrDuplicateLabel}
	case full:
		e = newError(ErrQuotaExceeded, fields)
	default:
		e = newError(ErrDuplicateLabel, fields)
	}
	if full {
		fields[BaseField] = errors.New(msgQuota)
	}
	if taken {
		fields["application"] = errors.New(msgTaken)
	}
	return e
}

// RevokeToken deletes a token owned by accountID.
func (s *ApplicationTokenService) RevokeToken(ctx context.Context, accountID, tokenID string) error {
	l := slogx.FromContext(ctx).With(
		slog.String("account_id", accountID),
		slog.String("token_id", tokenID),
	)
	tokens := s.Store.ApplicationTokens()

	token, err := tokens.GetApplicationTokenByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("revoke of unknown application token")
			return fieldError(ErrNotFound, BaseField, "application token not found")
		}
		return fmt.Errorf("get application token: %w", err)
	}

	if token.AccountID != accountID {
		l.Warn("cross-account application token revoke", slog.String("owner_id", token.AccountID))
		return fieldError(ErrForbidden, BaseField, "application token belongs to another account")
	}

	if err := tokens.DeleteApplicationToken(ctx, tokenID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fieldError(ErrNotFound, BaseField, "application token not found")
		}
		return fmt.Errorf("delete application token: %w", err)
	}

	l.Info("application token revoked", slog.String("application", token.Application))
	return nil
}

// Authenticate resolves an API login made with an email and an application
// token secret. Unknown emails, unknown secrets and tokens of other accounts
// all look the same to the caller.
func (s *ApplicationTokenService) Authenticate(ctx context.Context, email, secret string) (domain.Account, domain.ApplicationToken, error) {
	l := slogx.FromContext(ctx)
	invalid := fieldError(ErrNotFound, BaseField, "invalid email or token")

	if email == "" || secret == "" {
		return domain.Account{}, domain.ApplicationToken{}, invalid
	}

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("token authentication failed")
			return domain.Account{}, domain.ApplicationToken{}, invalid
		}
		return domain.Account{}, domain.ApplicationToken{}, fmt.Errorf("get account: %w", err)
	}

	token, err := s.Store.ApplicationTokens().GetApplicationTokenByHash(ctx, s.Credentials.Fingerprint(secret))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("token authentication failed", slog.String("account_id", account.ID))
			return domain.Account{}, domain.ApplicationToken{}, invalid
		}
		return domain.Account{}, domain.ApplicationToken{}, fmt.Errorf("get application token: %w", err)
	}
	if token.AccountID != account.ID {
		l.Warn("token authentication failed", slog.String("account_id", account.ID))
		return domain.Account{}, domain.ApplicationToken{}, invalid
	}

	if !account.ActiveForAuthentication() {
		l.Warn("token authentication for inactive account", slog.String("account_id", account.ID))
		return domain.Account{}, domain.ApplicationToken{}, fieldError(ErrForbidden, BaseField, "account is disabled")
	}

	return account, token, nil
}
