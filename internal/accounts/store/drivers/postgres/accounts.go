package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
)

type accountsRepo struct {
	db   dbtx
	inTx bool
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	a, err := scanAccount(row)
	return a, mapNotFound(err)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	a, err := scanAccount(row)
	return a, mapNotFound(err)
}

func (r *accountsRepo) GetSystemAccount(ctx context.Context) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE system LIMIT 1`)
	a, err := scanAccount(row)
	return a, mapNotFound(err)
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE NOT system ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.Email, a.DisplayName, a.PasswordHash, a.Admin, a.Enabled, a.System, a.CreatedAt, now,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, id, email, displayName string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET email = $1, display_name = $2, updated_at = $3 WHERE id = $4`,
		email, displayName, time.Now().UTC(), id,
	)
	return affected(res, mapConstraint(err))
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		hash, time.Now().UTC(), id,
	)
	return affected(res, err)
}

func (r *accountsRepo) SetEnabled(ctx context.Context, id string, enabled bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET enabled = $1, updated_at = $2 WHERE id = $3`,
		enabled, time.Now().UTC(), id,
	)
	return affected(res, err)
}

func (r *accountsRepo) count(ctx context.Context, query string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, query).Scan(&n)
	return n, err
}

func (r *accountsRepo) CountAdmins(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM accounts WHERE NOT system AND admin`)
}

func (r *accountsRepo) CountEnabledAdmins(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM accounts WHERE NOT system AND admin AND enabled`)
}

func (r *accountsRepo) CountAccounts(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM accounts WHERE NOT system`)
}

// LockAccount holds the account row until the transaction ends. A missing
// row is not an error here; the caller's next read reports it.
func (r *accountsRepo) LockAccount(ctx context.Context, id string) error {
	if !r.inTx {
		return nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM accounts WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return err
	}
	return rows.Close()
}

// LockTable blocks concurrent writers to accounts (but not readers) until the
// transaction ends.
func (r *accountsRepo) LockTable(ctx context.Context) error {
	if !r.inTx {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `LOCK TABLE accounts IN SHARE ROW EXCLUSIVE MODE`)
	return err
}
