package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// ReportingService defines read-only aggregate views over an owner's transactions
type ReportingService interface {
	// Summary totals paid income and expense within the resolved period.
	Summary(ctx context.Context, userID string, period domain.PeriodQuery) (*domain.Summary, error)

	// ByCategory returns signed per-category totals sorted by absolute value, largest first.
	ByCategory(ctx context.Context, userID string, period domain.PeriodQuery, txnType *domain.TransactionType) ([]domain.CategoryTotal, error)

	// Monthly returns twelve buckets for year, or for the current year when year is nil.
	Monthly(ctx context.Context, userID string, year *int) (*domain.MonthlyReport, error)
}
