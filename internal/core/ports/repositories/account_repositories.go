package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines owner scoped read operations for account data.
// Lookups of an id owned by someone else return apperrors.ErrNotFound.
type AccountReader interface {
	// FindAccountByID retrieves an account by id within the owner's scope.
	FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the owner's active accounts, newest first.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates name, type, bank and currency. Balance is never written here.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive. Deactivating twice is not an error.
	DeactivateAccount(ctx context.Context, userID string, accountID string, now time.Time) error
}

// AccountTransactionSupport defines operations that run inside a ledger unit of work
type AccountTransactionSupport interface {
	// UpdateAccountBalancesInTx adds each delta to the matching account balance.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
