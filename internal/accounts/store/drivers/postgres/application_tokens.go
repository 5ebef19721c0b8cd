package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
)

type applicationTokensRepo struct {
	db dbtx
}

func (r *applicationTokensRepo) CreateApplicationToken(ctx context.Context, t domain.ApplicationToken) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO application_tokens (`+applicationTokenColumns+`)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.AccountID, t.Application, t.TokenHash, t.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *applicationTokensRepo) GetApplicationTokenByID(ctx context.Context, id string) (domain.ApplicationToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+applicationTokenColumns+` FROM application_tokens WHERE id = $1`, id)
	t, err := scanApplicationToken(row)
	return t, mapNotFound(err)
}

func (r *applicationTokensRepo) GetApplicationTokenByHash(ctx context.Context, hash string) (domain.ApplicationToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+applicationTokenColumns+` FROM application_tokens WHERE token_hash = $1`, hash)
	t, err := scanApplicationToken(row)
	return t, mapNotFound(err)
}

func (r *applicationTokensRepo) ListApplicationTokens(ctx context.Context, accountID string) ([]domain.ApplicationToken, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationTokenColumns+` FROM application_tokens
		 WHERE account_id = $1 ORDER BY created_at, id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []domain.ApplicationToken
	for rows.Next() {
		t, err := scanApplicationToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *applicationTokensRepo) CountApplicationTokens(ctx context.Context, accountID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM application_tokens WHERE account_id = $1`, accountID).Scan(&n)
	return n, err
}

func (r *applicationTokensRepo) ApplicationTokenExists(ctx context.Context, accountID, application string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM application_tokens WHERE account_id = $1 AND application = $2)`,
		accountID, application).Scan(&exists)
	return exists, err
}

func (r *applicationTokensRepo) DeleteApplicationToken(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM application_tokens WHERE id = $1`, id)
	return affected(res, err)
}
