package postgres

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/doorman/internal/accounts/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Accounts() store.Accounts { return &accountsRepo{db: t.tx, inTx: true} }
func (t *txStore) ApplicationTokens() store.ApplicationTokens {
	return &applicationTokensRepo{db: t.tx}
}

func (t *txStore) ApplyMigrations() error { return nil }
