package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// amountScale matches the NUMERIC(18, 2) columns.
const amountScale = 2

// transactionService is the ledger engine: every mutation of a transaction and the
// matching account balance adjustment happen in one unit of work.
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryWithTx
	accountRepo  portsrepo.AccountRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	now          func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionClock overrides time.Now, mostly for tests.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates the ledger engine.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	categoryRepo portsrepo.CategoryReader,
	options ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) fetchAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	return fetchOwned(ctx, &s.BaseService, "account", accountID, func() (*domain.Account, error) {
		return s.accountRepo.FindAccountByID(ctx, userID, accountID)
	})
}

func (s *transactionService) fetchCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	return fetchOwned(ctx, &s.BaseService, "category", categoryID, func() (*domain.Category, error) {
		return s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	})
}

// withUnitOfWork runs fn inside a database transaction. Any error from fn rolls
// everything back, so a row change never lands without its balance change.
func (s *transactionService) withUnitOfWork(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return s.storeError(ctx, err, "failed to begin unit of work")
	}
	defer func() {
		if rbErr := s.txnRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back unit of work")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return s.storeError(ctx, err, "failed to commit unit of work")
	}
	return nil
}

// applyBalanceChanges moves account balances from the state of before to the state of after.
func (s *transactionService) applyBalanceChanges(ctx context.Context, tx pgx.Tx, before, after *domain.Transaction, now time.Time) error {
	changes := accounting.BalanceChanges(before, after)
	if len(changes) == 0 {
		return nil
	}
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, now); err != nil {
		s.LogError(ctx, err, "Failed to update account balances", slog.Any("accounts", accounting.SortedAccountIDs(changes)))
		return apperrors.NewInternalError("failed to update account balances", err)
	}
	return nil
}

func normalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	rounded := amount.Round(amountScale)
	if !rounded.IsPositive() {
		return decimal.Zero, apperrors.NewValidationError("Amount must be positive")
	}
	return rounded, nil
}

func parseTransactionDate(value string) (time.Time, error) {
	t, _, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("Invalid date: expected YYYY-MM-DD or RFC3339")
	}
	return t, nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func requireCategoryType(category *domain.Category, txnType domain.TransactionType) error {
	if category.Type != txnType {
		return apperrors.NewConflictError("Category type does not match transaction type")
	}
	return nil
}

func withRefs(txn domain.Transaction, account *domain.Account, category *domain.Category) *domain.Transaction {
	if account != nil {
		txn.Account = &domain.AccountSummary{Name: account.Name, AccountType: account.AccountType}
	}
	if category != nil {
		txn.Category = &domain.CategorySummary{Name: category.Name, Color: category.Color, Icon: category.Icon}
	}
	return &txn
}

// CreateTransaction records a transaction and, when it is paid, adds its signed amount
// to the account balance in the same unit of work.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperrors.NewValidationError("Description is required")
	}
	if req.Amount == nil {
		return nil, apperrors.NewValidationError("Amount is required")
	}
	amount, err := normalizeAmount(*req.Amount)
	if err != nil {
		return nil, err
	}
	if !req.Type.IsValid() {
		return nil, apperrors.NewValidationError("Type must be income or expense")
	}

	now := s.now().UTC()
	date := now
	if req.Date != nil && *req.Date != "" {
		if date, err = parseTransactionDate(*req.Date); err != nil {
			return nil, err
		}
	}
	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	// Preconditions are checked before the unit of work and never mutate anything.
	account, err := s.fetchAccount(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.NewValidationError("Account is inactive")
	}
	category, err := s.fetchCategory(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := requireCategoryType(category, req.Type); err != nil {
		return nil, err
	}

	categoryID := category.CategoryID
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Description:   description,
		Amount:        amount,
		Type:          req.Type,
		Date:          date,
		IsPaid:        isPaid,
		Notes:         normalizeNotes(req.Notes),
		AccountID:     account.AccountID,
		CategoryID:    &categoryID,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	err = s.withUnitOfWork(ctx, func(tx pgx.Tx) error {
		if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
			return s.storeError(ctx, err, "failed to insert transaction", slog.String("transaction_id", txn.TransactionID))
		}
		return s.applyBalanceChanges(ctx, tx, nil, &txn, now)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.Bool("is_paid", txn.IsPaid))
	return withRefs(txn, account, category), nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	return fetchOwned(ctx, &s.BaseService, "transaction", transactionID, func() (*domain.Transaction, error) {
		return s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	})
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	page := pagination.NewPage(params.Page, params.Limit)
	filter := domain.TransactionFilter{
		Type:       domain.TransactionType(params.Type),
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
		Limit:      page.Limit,
		Offset:     page.Offset(),
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, apperrors.NewValidationError("Type must be income or expense")
	}
	if filter.AccountID != "" && uuid.Validate(filter.AccountID) != nil {
		return nil, apperrors.NewValidationError("Invalid accountId")
	}
	if filter.CategoryID != "" && uuid.Validate(filter.CategoryID) != nil {
		return nil, apperrors.NewValidationError("Invalid categoryId")
	}

	period, err := dto.PeriodParams{StartDate: params.StartDate, EndDate: params.EndDate}.ToPeriodQuery()
	if err != nil {
		return nil, err
	}
	filter.Range = domain.ResolveDateRange(period)

	transactions, total, err := s.txnRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, s.storeError(ctx, err, "failed to list transactions")
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToListTransactionResponse(transactions),
		Pagination: dto.PaginationResponse{
			Page:  page.Page,
			Limit: page.Limit,
			Total: total,
			Pages: pagination.TotalPages(total, page.Limit),
		},
	}, nil
}

// validatedPatch holds the parsed, checked values of an update request.
type validatedPatch struct {
	req         dto.UpdateTransactionRequest
	description *string
	amount      *decimal.Decimal
	date        *time.Time
}

func validateTransactionPatch(req dto.UpdateTransactionRequest) (validatedPatch, error) {
	p := validatedPatch{req: req}
	if req.Description != nil {
		d := strings.TrimSpace(*req.Description)
		if d == "" {
			return p, apperrors.NewValidationError("Description cannot be empty")
		}
		p.description = &d
	}
	if req.Amount != nil {
		a, err := normalizeAmount(*req.Amount)
		if err != nil {
			return p, err
		}
		p.amount = &a
	}
	if req.Type != nil && !req.Type.IsValid() {
		return p, apperrors.NewValidationError("Type must be income or expense")
	}
	if req.Date != nil {
		d, err := parseTransactionDate(*req.Date)
		if err != nil {
			return p, err
		}
		p.date = &d
	}
	return p, nil
}

// apply returns current with the patch laid over it. current is not modified.
func (p validatedPatch) apply(current domain.Transaction, now time.Time) domain.Transaction {
	next := current
	next.Account, next.Category = nil, nil
	if p.description != nil {
		next.Description = *p.description
	}
	if p.amount != nil {
		next.Amount = *p.amount
	}
	if p.req.Type != nil {
		next.Type = *p.req.Type
	}
	if p.date != nil {
		next.Date = *p.date
	}
	if p.req.IsPaid != nil {
		next.IsPaid = *p.req.IsPaid
	}
	if p.req.Notes != nil {
		next.Notes = normalizeNotes(p.req.Notes)
	}
	if p.req.AccountID != nil {
		next.AccountID = *p.req.AccountID
	}
	if p.req.CategoryID != nil {
		id := *p.req.CategoryID
		next.CategoryID = &id
	}
	next.UpdatedAt = now
	return next
}

func sameRefs(a, b domain.Transaction) bool {
	if a.AccountID != b.AccountID || a.Type != b.Type {
		return false
	}
	if a.CategoryID == nil || b.CategoryID == nil {
		return a.CategoryID == nil && b.CategoryID == nil
	}
	return *a.CategoryID == *b.CategoryID
}

// UpdateTransaction patches a transaction and reconciles balances with
// delta = contribution(new) - contribution(old), where an unpaid transaction
// contributes zero. A change of account reverses on the old account and applies
// on the new one.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	patch, err := validateTransactionPatch(req)
	if err != nil {
		return nil, err
	}

	current, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	planned := patch.apply(*current, now)

	// Reference checks happen before the unit of work.
	if planned.AccountID != current.AccountID {
		account, err := s.fetchAccount(ctx, userID, planned.AccountID)
		if err != nil {
			return nil, err
		}
		if !account.IsActive {
			return nil, apperrors.NewValidationError("Account is inactive")
		}
	}
	if planned.CategoryID != nil && (req.CategoryID != nil || planned.Type != current.Type) {
		category, err := s.fetchCategory(ctx, userID, *planned.CategoryID)
		if err != nil {
			return nil, err
		}
		if err := requireCategoryType(category, planned.Type); err != nil {
			return nil, err
		}
	}

	var updated domain.Transaction
	err = s.withUnitOfWork(ctx, func(tx pgx.Tx) error {
		locked, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, tx, userID, transactionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("transaction")
			}
			return s.storeError(ctx, err, "failed to lock transaction", slog.String("transaction_id", transactionID))
		}

		updated = patch.apply(*locked, now)
		if !sameRefs(updated, planned) {
			// The checks above were made against a row that changed since.
			return apperrors.NewConflictError("Transaction was modified concurrently, please retry")
		}

		if err := s.applyBalanceChanges(ctx, tx, locked, &updated, now); err != nil {
			return err
		}
		if err := s.txnRepo.UpdateTransactionInTx(ctx, tx, updated); err != nil {
			return s.storeError(ctx, err, "failed to update transaction", slog.String("transaction_id", transactionID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))

	fresh, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		// The update is committed; only the joined read failed.
		s.LogError(ctx, err, "Failed to reload updated transaction", slog.String("transaction_id", transactionID))
		return &updated, nil
	}
	return fresh, nil
}

// DeleteTransaction removes a transaction, first taking its contribution back out of
// the account balance when it was paid.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	if uuid.Validate(transactionID) != nil {
		return apperrors.NewNotFoundError("transaction")
	}

	now := s.now().UTC()
	err := s.withUnitOfWork(ctx, func(tx pgx.Tx) error {
		current, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, tx, userID, transactionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("transaction")
			}
			return s.storeError(ctx, err, "failed to lock transaction", slog.String("transaction_id", transactionID))
		}

		if err := s.applyBalanceChanges(ctx, tx, current, nil, now); err != nil {
			return err
		}
		if err := s.txnRepo.DeleteTransactionInTx(ctx, tx, userID, transactionID); err != nil {
			return s.storeError(ctx, err, "failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
