package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/doorman/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Sub-repositories are reached through methods so a Tx can
// hand out the same repositories bound to the transaction.
type Store interface {
	Accounts() Accounts
	ApplicationTokens() ApplicationTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail expects an already normalised email.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	GetSystemAccount(ctx context.Context) (domain.Account, error)

	// ListAccounts returns every non-system account in creation order.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// CreateAccount inserts a new account. A taken email (or a second system
	// account) yields ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdateProfile sets email and display_name and bumps updated_at.
	UpdateProfile(ctx context.Context, id, email, displayName string) error

	// UpdatePasswordHash sets the password hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, id, hash string) error

	// SetEnabled sets the enabled flag and bumps updated_at.
	SetEnabled(ctx context.Context, id string, enabled bool) error

	// CountAdmins counts non-system admin accounts, enabled or not.
	CountAdmins(ctx context.Context) (int, error)

	// CountEnabledAdmins counts non-system admin accounts that are enabled.
	CountEnabledAdmins(ctx context.Context) (int, error)

	// CountAccounts counts non-system accounts.
	CountAccounts(ctx context.Context) (int, error)

	// LockAccount takes a write lock on one account row until the enclosing
	// transaction ends. Only meaningful inside a Tx.
	LockAccount(ctx context.Context, id string) error

	// LockTable serialises transactions that make decisions from account
	// counts (first admin, last enabled admin). Only meaningful inside a Tx.
	LockTable(ctx context.Context) error
}

type ApplicationTokens interface {
	// CreateApplicationToken inserts a token. A duplicate (account,
	// application) pair yields ErrAlreadyExists.
	CreateApplicationToken(ctx context.Context, t domain.ApplicationToken) error

	GetApplicationTokenByID(ctx context.Context, id string) (domain.ApplicationToken, error)

	GetApplicationTokenByHash(ctx context.Context, hash string) (domain.ApplicationToken, error)

	// ListApplicationTokens returns an account's tokens in creation order.
	ListApplicationTokens(ctx context.Context, accountID string) ([]domain.ApplicationToken, error)

	CountApplicationTokens(ctx context.Context, accountID string) (int, error)

	// ApplicationTokenExists reports whether the account already holds a
	// token with exactly this label.
	ApplicationTokenExists(ctx context.Context, accountID, application string) (bool, error)

	// DeleteApplicationToken removes a token; ErrNotFound when it is gone.
	DeleteApplicationToken(ctx context.Context, id string) error
}
