package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
	"github.com/aussiebroadwan/doorman/internal/accounts/store"
	"github.com/aussiebroadwan/doorman/internal/accounts/store/drivers/sqlite/gen"
)

type accountsRepo struct {
	q *gen.Queries
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row, err := r.q.GetAccountByID(ctx, id)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row, err := r.q.GetAccountByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) GetSystemAccount(ctx context.Context) (domain.Account, error) {
	row, err := r.q.GetSystemAccount(ctx)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.q.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, len(rows))
	for i, row := range rows {
		accounts[i] = mapAccount(row)
	}
	return accounts, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}

	err := r.q.CreateAccount(ctx, gen.CreateAccountParams{
		ID:           a.ID,
		Email:        a.Email,
		DisplayName:  a.DisplayName,
		PasswordHash: a.PasswordHash,
		Admin:        a.Admin,
		Enabled:      a.Enabled,
		System:       a.System,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    now,
	})
	return mapConstraint(err)
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, id, email, displayName string) error {
	n, err := r.q.UpdateAccountProfile(ctx, gen.UpdateAccountProfileParams{
		Email:       email,
		DisplayName: displayName,
		UpdatedAt:   time.Now().UTC(),
		ID:          id,
	})
	return affected(n, mapConstraint(err))
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	n, err := r.q.UpdateAccountPasswordHash(ctx, gen.UpdateAccountPasswordHashParams{
		PasswordHash: hash,
		UpdatedAt:    time.Now().UTC(),
		ID:           id,
	})
	return affected(n, err)
}

func (r *accountsRepo) SetEnabled(ctx context.Context, id string, enabled bool) error {
	n, err := r.q.UpdateAccountEnabled(ctx, gen.UpdateAccountEnabledParams{
		Enabled:   enabled,
		UpdatedAt: time.Now().UTC(),
		ID:        id,
	})
	return affected(n, err)
}

func (r *accountsRepo) CountAdmins(ctx context.Context) (int, error) {
	n, err := r.q.CountAdmins(ctx)
	return int(n), err
}

func (r *accountsRepo) CountEnabledAdmins(ctx context.Context) (int, error) {
	n, err := r.q.CountEnabledAdmins(ctx)
	return int(n), err
}

func (r *accountsRepo) CountAccounts(ctx context.Context) (int, error) {
	n, err := r.q.CountAccounts(ctx)
	return int(n), err
}

// LockAccount is a no-op: transactions start with BEGIN IMMEDIATE and
// already hold the database write lock.
func (r *accountsRepo) LockAccount(ctx context.Context, id string) error { return nil }

// LockTable is a no-op for the same reason as LockAccount.
func (r *accountsRepo) LockTable(ctx context.Context) error { return nil }

func affected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
