package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetSummaryTotals(ctx context.Context, userID string, dateRange domain.DateRange) (domain.Summary, error) {
	args := m.Called(ctx, userID, dateRange)
	return args.Get(0).(domain.Summary), args.Error(1)
}

func (m *MockReportingRepository) GetCategoryTotals(ctx context.Context, userID string, dateRange domain.DateRange, txnType *domain.TransactionType) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, userID, dateRange, txnType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyTotals(ctx context.Context, userID string, year int) ([]domain.MonthlyBucket, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyBucket), args.Error(1)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestReportingSummary(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)
	ctx := context.Background()
	userID := uuid.NewString()

	year := 2024
	start, end := domain.YearBounds(year)
	repo.On("GetSummaryTotals", ctx, userID, domain.DateRange{Start: &start, End: &end}).
		Return(domain.Summary{TotalIncome: d("1000"), TotalExpense: d("250.50"), TransactionsCount: 7}, nil).Once()

	summary, err := svc.Summary(ctx, userID, domain.PeriodQuery{Year: &year})
	require.NoError(t, err)
	assert.True(t, d("749.50").Equal(summary.Balance))
	assert.Equal(t, int64(7), summary.TransactionsCount)
	repo.AssertExpectations(t)
}

func TestReportingSummaryStoreFailure(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)
	ctx := context.Background()

	repo.On("GetSummaryTotals", ctx, "u", domain.DateRange{}).
		Return(domain.Summary{}, errors.New("relation \"transactions\" does not exist")).Once()

	_, err := svc.Summary(ctx, "u", domain.PeriodQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.Equal(t, apperrors.GenericInternalMessage, apperrors.PublicMessage(err))
}

func TestReportingByCategorySignsAndSorts(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)
	ctx := context.Background()

	foodID, salaryID := uuid.NewString(), uuid.NewString()
	repo.On("GetCategoryTotals", ctx, "u", domain.DateRange{}, (*domain.TransactionType)(nil)).Return([]domain.CategoryTotal{
		{CategoryID: &foodID, CategoryName: "Food", Type: domain.Expense, Total: d("50"), Count: 2},
		{CategoryID: nil, Type: domain.Expense, Total: d("5"), Count: 1},
		{CategoryID: &salaryID, CategoryName: "Salary", Type: domain.Income, Total: d("1000"), Count: 1},
	}, nil).Once()

	rows, err := svc.ByCategory(ctx, "u", domain.PeriodQuery{}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Salary", rows[0].CategoryName)
	assert.True(t, d("1000").Equal(rows[0].Total))
	assert.Equal(t, "Food", rows[1].CategoryName)
	assert.True(t, d("-50").Equal(rows[1].Total))
	assert.Equal(t, domain.UncategorizedName, rows[2].CategoryName)
	assert.Nil(t, rows[2].CategoryID)
	assert.True(t, d("-5").Equal(rows[2].Total))
}

func TestReportingMonthlyFillsTwelveBuckets(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo, services.WithReportingClock(clock))
	ctx := context.Background()

	repo.On("GetMonthlyTotals", ctx, "u", 2024).Return([]domain.MonthlyBucket{
		{Month: 3, Income: d("100"), Expense: d("40")},
		{Month: 12, Income: d("0"), Expense: d("10")},
	}, nil).Once()

	report, err := svc.Monthly(ctx, "u", nil)
	require.NoError(t, err)
	assert.Equal(t, 2024, report.Year)
	require.Len(t, report.Data, 12)
	for i, b := range report.Data {
		assert.Equal(t, i+1, b.Month)
	}
	assert.True(t, d("60").Equal(report.Data[2].Balance))
	assert.True(t, d("-10").Equal(report.Data[11].Balance))
	assert.True(t, report.Data[0].Income.IsZero())
	assert.True(t, report.Data[0].Balance.IsZero())
	repo.AssertExpectations(t)
}

// The reports run against the in-memory store end to end.
func TestReportsOverLedger(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	userID := uuid.NewString()
	accounts := services.NewAccountService(store)
	categories := services.NewCategoryService(store)
	txns := services.NewTransactionService(store, store, store, services.WithTransactionClock(clock))
	reports := services.NewReportingService(store, services.WithReportingClock(clock))

	acc, err := accounts.CreateAccount(ctx, userID, dto.CreateAccountRequest{Name: "Main", Type: domain.Checking})
	require.NoError(t, err)
	food, err := categories.CreateCategory(ctx, userID, dto.CreateCategoryRequest{Name: "Food", Type: domain.Expense})
	require.NoError(t, err)
	salary, err := categories.CreateCategory(ctx, userID, dto.CreateCategoryRequest{Name: "Salary", Type: domain.Income})
	require.NoError(t, err)

	for _, tc := range []struct {
		cat, amt string
		typ      domain.TransactionType
		paid     bool
	}{
		{food.CategoryID, "40", domain.Expense, true},
		{food.CategoryID, "10", domain.Expense, true},
		{salary.CategoryID, "1000", domain.Income, true},
		{food.CategoryID, "500", domain.Expense, false},
	} {
		_, err := txns.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
			Description: "x", Amount: amount(tc.amt), Type: tc.typ, IsPaid: ptr(tc.paid),
			AccountID: acc.AccountID, CategoryID: tc.cat,
		})
		require.NoError(t, err)
	}

	rows, err := reports.ByCategory(ctx, userID, domain.PeriodQuery{}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Salary", rows[0].CategoryName)
	assert.True(t, d("1000").Equal(rows[0].Total))
	assert.Equal(t, "Food", rows[1].CategoryName)
	assert.True(t, d("-50").Equal(rows[1].Total))
	assert.Equal(t, int64(2), rows[1].Count)

	first, err := reports.Summary(ctx, userID, domain.PeriodQuery{})
	require.NoError(t, err)
	second, err := reports.Summary(ctx, userID, domain.PeriodQuery{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, d("950").Equal(first.Balance))
	assert.Equal(t, int64(4), first.TransactionsCount)

	monthly, err := reports.Monthly(ctx, userID, nil)
	require.NoError(t, err)
	assert.True(t, d("950").Equal(monthly.Data[2].Balance))

	other := 2023
	empty, err := reports.Monthly(ctx, userID, &other)
	require.NoError(t, err)
	for _, b := range empty.Data {
		assert.True(t, b.Balance.IsZero())
	}
}
