package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, user_id, description, amount, type, date, is_paid, notes, account_id, category_id, created_at, updated_at`

const transactionWithRefsSelect = `
	SELECT t.id, t.user_id, t.description, t.amount, t.type, t.date, t.is_paid, t.notes,
	       t.account_id, t.category_id, t.created_at, t.updated_at,
	       a.name, a.type, c.name, c.color, c.icon
	FROM transactions t
	JOIN accounts a ON a.id = t.account_id
	LEFT JOIN categories c ON c.id = t.category_id
`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func transactionScanTargets(m *models.Transaction) []any {
	return []any{
		&m.TransactionID,
		&m.UserID,
		&m.Description,
		&m.Amount,
		&m.Type,
		&m.Date,
		&m.IsPaid,
		&m.Notes,
		&m.AccountID,
		&m.CategoryID,
		&m.CreatedAt,
		&m.UpdatedAt,
	}
}

func scanTransactionWithRefs(row pgx.Row) (models.TransactionWithRefs, error) {
	var m models.TransactionWithRefs
	targets := append(transactionScanTargets(&m.Transaction),
		&m.AccountName,
		&m.AccountType,
		&m.CategoryName,
		&m.CategoryColor,
		&m.CategoryIcon,
	)
	err := row.Scan(targets...)
	return m, err
}

// FindTransactionByID retrieves a transaction with its account and category summaries.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	query := transactionWithRefsSelect + ` WHERE t.id = $1 AND t.user_id = $2;`

	m, err := scanTransactionWithRefs(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransactionWithRefs(m)
	return &txn, nil
}

// buildTransactionFilter renders the WHERE clause shared by the page and count queries.
func buildTransactionFilter(userID string, filter domain.TransactionFilter) (string, []any) {
	conds := []string{"t.user_id = $1"}
	args := []any{userID}
	addCond := func(format string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if filter.Type != "" {
		addCond("t.type = $%d", string(filter.Type))
	}
	if filter.AccountID != "" {
		addCond("t.account_id = $%d", filter.AccountID)
	}
	if filter.CategoryID != "" {
		addCond("t.category_id = $%d", filter.CategoryID)
	}
	if filter.Range.Start != nil {
		addCond("t.date >= $%d", *filter.Range.Start)
	}
	if filter.Range.End != nil {
		addCond("t.date < $%d", *filter.Range.End)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListTransactions returns one page of the owner's transactions, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, int64, error) {
	where, args := buildTransactionFilter(userID, filter)

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions t`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for user %s: %w", userID, err)
	}

	pageArgs := append(args, filter.Limit, filter.Offset)
	query := transactionWithRefsSelect + where +
		fmt.Sprintf(" ORDER BY t.date DESC, t.created_at DESC LIMIT $%d OFFSET $%d;", len(args)+1, len(args)+2)

	rows, err := r.Pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransactionWithRefs(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, mapping.ToDomainTransactionWithRefs(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, total, nil
}

// FindTransactionByIDForUpdate locks the row until tx ends so concurrent updates of the
// same transaction compute their balance delta against the latest state.
func (r *PgxTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2 FOR UPDATE;`

	var m models.Transaction
	if err := tx.QueryRow(ctx, query, transactionID, userID).Scan(transactionScanTargets(&m)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock transaction %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `INSERT INTO transactions (` + transactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Description,
		m.Amount,
		m.Type,
		m.Date,
		m.IsPaid,
		m.Notes,
		m.AccountID,
		m.CategoryID,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET description = $3, amount = $4, type = $5, date = $6, is_paid = $7, notes = $8,
		    account_id = $9, category_id = $10, updated_at = $11
		WHERE id = $1 AND user_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Description,
		m.Amount,
		m.Type,
		m.Date,
		m.IsPaid,
		m.Notes,
		m.AccountID,
		m.CategoryID,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, userID string, transactionID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2;`, transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
