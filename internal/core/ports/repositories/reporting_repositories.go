package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// ReportingRepository defines read-only aggregate queries over an owner's transactions.
// Amount totals only include paid transactions.
type ReportingRepository interface {
	// GetSummaryTotals returns paid income/expense totals and the count of all transactions in range.
	GetSummaryTotals(ctx context.Context, userID string, dateRange domain.DateRange) (domain.Summary, error)

	// GetCategoryTotals groups paid transactions by (category, type). Totals are unsigned and
	// rows whose category no longer exists have a nil CategoryID and empty name.
	GetCategoryTotals(ctx context.Context, userID string, dateRange domain.DateRange, txnType *domain.TransactionType) ([]domain.CategoryTotal, error)

	// GetMonthlyTotals returns income/expense sums for the months of year that have data.
	GetMonthlyTotals(ctx context.Context, userID string, year int) ([]domain.MonthlyBucket, error)
}
