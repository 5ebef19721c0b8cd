package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
	"github.com/aussiebroadwan/doorman/internal/accounts/store/drivers/sqlite/gen"
)

type applicationTokensRepo struct {
	q *gen.Queries
}

func (r *applicationTokensRepo) CreateApplicationToken(ctx context.Context, t domain.ApplicationToken) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	err := r.q.CreateApplicationToken(ctx, gen.CreateApplicationTokenParams{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Application: t.Application,
		TokenHash:   t.TokenHash,
		CreatedAt:   t.CreatedAt,
	})
	return mapConstraint(err)
}

func (r *applicationTokensRepo) GetApplicationTokenByID(ctx context.Context, id string) (domain.ApplicationToken, error) {
	row, err := r.q.GetApplicationTokenByID(ctx, id)
	if err != nil {
		return domain.ApplicationToken{}, mapNotFound(err)
	}
	return mapApplicationToken(row), nil
}

func (r *applicationTokensRepo) GetApplicationTokenByHash(ctx context.Context, hash string) (domain.ApplicationToken, error) {
	row, err := r.q.GetApplicationTokenByHash(ctx, hash)
	if err != nil {
		return domain.ApplicationToken{}, mapNotFound(err)
	}
	return mapApplicationToken(row), nil
}

func (r *applicationTokensRepo) ListApplicationTokens(ctx context.Context, accountID string) ([]domain.ApplicationToken, error) {
	rows, err := r.q.ListApplicationTokensByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	tokens := make([]domain.ApplicationToken, len(rows))
	for i, row := range rows {
		tokens[i] = mapApplicationToken(row)
	}
	return tokens, nil
}

func (r *applicationTokensRepo) CountApplicationTokens(ctx context.Context, accountID string) (int, error) {
	n, err := r.q.CountApplicationTokensByAccount(ctx, accountID)
	return int(n), err
}

func (r *applicationTokensRepo) ApplicationTokenExists(ctx context.Context, accountID, application string) (bool, error) {
	n, err := r.q.CountApplicationTokensByLabel(ctx, gen.CountApplicationTokensByLabelParams{
		AccountID:   accountID,
		Application: application,
	})
	return n > 0, err
}

func (r *applicationTokensRepo) DeleteApplicationToken(ctx context.Context, id string) error {
	n, err := r.q.DeleteApplicationToken(ctx, id)
	return affected(n, err)
}
