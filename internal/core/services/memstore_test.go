package services_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// errStoreDown is what memStore returns from a method listed in failOn.
var errStoreDown = errors.New("connection reset by peer")

// memTx is a pgx.Tx stand-in carrying a private working copy of the store.
type memTx struct {
	pgx.Tx
	state    *memState
	finished bool
}

type memState struct {
	accounts     map[string]domain.Account
	categories   map[string]domain.Category
	transactions map[string]domain.Transaction
}

func (st *memState) clone() *memState {
	c := &memState{
		accounts:     make(map[string]domain.Account, len(st.accounts)),
		categories:   make(map[string]domain.Category, len(st.categories)),
		transactions: make(map[string]domain.Transaction, len(st.transactions)),
	}
	for k, v := range st.accounts {
		c.accounts[k] = v
	}
	for k, v := range st.categories {
		c.categories[k] = v
	}
	for k, v := range st.transactions {
		c.transactions[k] = v
	}
	return c
}

// memStore is a transactional in-memory implementation of the repository ports.
// Writes inside a unit of work only become visible on Commit.
type memStore struct {
	committed *memState
	failOn    map[string]bool
	commits   int
	rollbacks int
}

var (
	_ portsrepo.TransactionRepositoryWithTx = (*memStore)(nil)
	_ portsrepo.AccountRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.CategoryRepositoryFacade    = (*memStore)(nil)
	_ portsrepo.ReportingRepository         = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		committed: &memState{
			accounts:     map[string]domain.Account{},
			categories:   map[string]domain.Category{},
			transactions: map[string]domain.Transaction{},
		},
		failOn: map[string]bool{},
	}
}

func (m *memStore) fail(method string) error {
	if m.failOn[method] {
		return errStoreDown
	}
	return nil
}

func stateOf(tx pgx.Tx) *memState {
	return tx.(*memTx).state
}

// --- TransactionManager ---

func (m *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := m.fail("Begin"); err != nil {
		return nil, err
	}
	return &memTx{state: m.committed.clone()}, nil
}

func (m *memStore) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := m.fail("Commit"); err != nil {
		return err
	}
	t := tx.(*memTx)
	m.committed = t.state
	t.finished = true
	m.commits++
	return nil
}

func (m *memStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	t := tx.(*memTx)
	if t.finished {
		return nil
	}
	t.finished = true
	m.rollbacks++
	return nil
}

// --- accounts ---

func (m *memStore) FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	a, ok := m.committed.accounts[accountID]
	if !ok || a.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (m *memStore) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	var out []domain.Account
	for _, a := range m.committed.accounts {
		if a.UserID == userID && a.IsActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) SaveAccount(ctx context.Context, account domain.Account) error {
	if err := m.fail("SaveAccount"); err != nil {
		return err
	}
	m.committed.accounts[account.AccountID] = account
	return nil
}

func (m *memStore) UpdateAccount(ctx context.Context, account domain.Account) error {
	if _, ok := m.committed.accounts[account.AccountID]; !ok {
		return apperrors.ErrNotFound
	}
	m.committed.accounts[account.AccountID] = account
	return nil
}

func (m *memStore) DeactivateAccount(ctx context.Context, userID string, accountID string, now time.Time) error {
	a, ok := m.committed.accounts[accountID]
	if !ok || a.UserID != userID {
		return apperrors.ErrNotFound
	}
	a.IsActive = false
	a.UpdatedAt = now
	m.committed.accounts[accountID] = a
	return nil
}

func (m *memStore) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	if err := m.fail("UpdateAccountBalancesInTx"); err != nil {
		return err
	}
	st := stateOf(tx)
	for id, delta := range balanceChanges {
		a, ok := st.accounts[id]
		if !ok {
			return apperrors.ErrNotFound
		}
		a.Balance = a.Balance.Add(delta)
		a.UpdatedAt = now
		st.accounts[id] = a
	}
	return nil
}

// --- categories ---

func (m *memStore) FindCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	c, ok := m.committed.categories[categoryID]
	if !ok || c.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (m *memStore) ListCategories(ctx context.Context, userID string, categoryType *domain.TransactionType) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range m.committed.categories {
		if c.UserID == userID && (categoryType == nil || c.Type == *categoryType) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) CountTransactionsByCategory(ctx context.Context, userID string, categoryID string) (int64, error) {
	var n int64
	for _, t := range m.committed.transactions {
		if t.UserID == userID && t.CategoryID != nil && *t.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) SaveCategory(ctx context.Context, category domain.Category) error {
	for _, c := range m.committed.categories {
		if c.UserID == category.UserID && c.Type == category.Type && c.Name == category.Name {
			return apperrors.ErrDuplicate
		}
	}
	m.committed.categories[category.CategoryID] = category
	return nil
}

func (m *memStore) UpdateCategory(ctx context.Context, category domain.Category) error {
	for id, c := range m.committed.categories {
		if id != category.CategoryID && c.UserID == category.UserID && c.Type == category.Type && c.Name == category.Name {
			return apperrors.ErrDuplicate
		}
	}
	m.committed.categories[category.CategoryID] = category
	return nil
}

func (m *memStore) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	if n, _ := m.CountTransactionsByCategory(ctx, userID, categoryID); n > 0 {
		return apperrors.ErrConflict
	}
	delete(m.committed.categories, categoryID)
	return nil
}

// --- transactions ---

func (m *memStore) withRefs(st *memState, t domain.Transaction) *domain.Transaction {
	if a, ok := st.accounts[t.AccountID]; ok {
		t.Account = &domain.AccountSummary{Name: a.Name, AccountType: a.AccountType}
	}
	if t.CategoryID != nil {
		if c, ok := st.categories[*t.CategoryID]; ok {
			t.Category = &domain.CategorySummary{Name: c.Name, Color: c.Color, Icon: c.Icon}
		}
	}
	return &t
}

func (m *memStore) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	t, ok := m.committed.transactions[transactionID]
	if !ok || t.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return m.withRefs(m.committed, t), nil
}

func (m *memStore) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, int64, error) {
	var matched []domain.Transaction
	for _, t := range m.committed.transactions {
		if t.UserID != userID ||
			(filter.Type != "" && t.Type != filter.Type) ||
			(filter.AccountID != "" && t.AccountID != filter.AccountID) ||
			(filter.CategoryID != "" && (t.CategoryID == nil || *t.CategoryID != filter.CategoryID)) ||
			!inRange(t.Date, filter.Range) {
			continue
		}
		matched = append(matched, *m.withRefs(m.committed, t))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return []domain.Transaction{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

func (m *memStore) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string, transactionID string) (*domain.Transaction, error) {
	t, ok := stateOf(tx).transactions[transactionID]
	if !ok || t.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (m *memStore) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	if err := m.fail("SaveTransactionInTx"); err != nil {
		return err
	}
	txn.Account, txn.Category = nil, nil
	stateOf(tx).transactions[txn.TransactionID] = txn
	return nil
}

func (m *memStore) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	if err := m.fail("UpdateTransactionInTx"); err != nil {
		return err
	}
	txn.Account, txn.Category = nil, nil
	stateOf(tx).transactions[txn.TransactionID] = txn
	return nil
}

func (m *memStore) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, userID string, transactionID string) error {
	if err := m.fail("DeleteTransactionInTx"); err != nil {
		return err
	}
	delete(stateOf(tx).transactions, transactionID)
	return nil
}

// --- reporting ---

func inRange(t time.Time, r domain.DateRange) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && !t.Before(*r.End) {
		return false
	}
	return true
}

func (m *memStore) GetSummaryTotals(ctx context.Context, userID string, dateRange domain.DateRange) (domain.Summary, error) {
	s := domain.Summary{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
	for _, t := range m.committed.transactions {
		if t.UserID != userID || !inRange(t.Date, dateRange) {
			continue
		}
		s.TransactionsCount++
		if !t.IsPaid {
			continue
		}
		if t.Type == domain.Income {
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		} else {
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}
	}
	return s, nil
}

func (m *memStore) GetCategoryTotals(ctx context.Context, userID string, dateRange domain.DateRange, txnType *domain.TransactionType) ([]domain.CategoryTotal, error) {
	type key struct {
		id  string
		typ domain.TransactionType
	}
	groups := map[key]*domain.CategoryTotal{}
	var order []key
	for _, t := range m.committed.transactions {
		if t.UserID != userID || !t.IsPaid || !inRange(t.Date, dateRange) || (txnType != nil && t.Type != *txnType) {
			continue
		}
		k := key{typ: t.Type}
		if t.CategoryID != nil {
			k.id = *t.CategoryID
		}
		g, ok := groups[k]
		if !ok {
			g = &domain.CategoryTotal{Type: t.Type, Total: decimal.Zero}
			if c, found := m.committed.categories[k.id]; found {
				id := c.CategoryID
				g.CategoryID, g.CategoryName, g.Color, g.Icon = &id, c.Name, c.Color, c.Icon
			}
			groups[k] = g
			order = append(order, k)
		}
		g.Total = g.Total.Add(t.Amount)
		g.Count++
	}
	out := make([]domain.CategoryTotal, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	return out, nil
}

func (m *memStore) GetMonthlyTotals(ctx context.Context, userID string, year int) ([]domain.MonthlyBucket, error) {
	byMonth := map[int]*domain.MonthlyBucket{}
	for _, t := range m.committed.transactions {
		d := t.Date.UTC()
		if t.UserID != userID || !t.IsPaid || d.Year() != year {
			continue
		}
		b, ok := byMonth[int(d.Month())]
		if !ok {
			b = &domain.MonthlyBucket{Month: int(d.Month()), Income: decimal.Zero, Expense: decimal.Zero}
			byMonth[b.Month] = b
		}
		if t.Type == domain.Income {
			b.Income = b.Income.Add(t.Amount)
		} else {
			b.Expense = b.Expense.Add(t.Amount)
		}
	}
	out := make([]domain.MonthlyBucket, 0, len(byMonth))
	for _, b := range byMonth {
		out = append(out, *b)
	}
	return out, nil
}
