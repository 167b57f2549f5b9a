package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines owner scoped reads. Results carry account and category summaries.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns one page of matches ordered by date desc, plus the total match count.
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, int64, error)
}

// TransactionTxSupport defines the writes of the ledger unit of work.
type TransactionTxSupport interface {
	// FindTransactionByIDForUpdate loads and row-locks the current state of a transaction.
	FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string, transactionID string) (*domain.Transaction, error)

	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
	UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
	DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, userID string, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionTxSupport
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with unit of work control
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
