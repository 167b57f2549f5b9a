package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	now           func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides time.Now. The monthly report uses it for the default year.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

var errMonthOutOfRange = errors.New("month out of range")

func rangeAttrs(r domain.DateRange) []any {
	attrs := make([]any, 0, 2)
	if r.Start != nil {
		attrs = append(attrs, slog.String("from", r.Start.Format(time.RFC3339)))
	}
	if r.End != nil {
		attrs = append(attrs, slog.String("to", r.End.Format(time.RFC3339)))
	}
	return attrs
}

// Summary totals paid income and expense in the period. Balance is income minus expense.
func (s *reportingService) Summary(ctx context.Context, userID string, period domain.PeriodQuery) (*domain.Summary, error) {
	dateRange := domain.ResolveDateRange(period)

	summary, err := s.reportingRepo.GetSummaryTotals(ctx, userID, dateRange)
	if err != nil {
		return nil, s.storeError(ctx, err, "failed to compute summary", rangeAttrs(dateRange)...)
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)

	s.LogDebug(ctx, "Summary report generated", slog.Int64("transactions", summary.TransactionsCount))
	return &summary, nil
}

// ByCategory groups paid transactions by category. Expense totals are negated, rows
// whose category is gone are labeled uncategorized, and the result is ordered by
// absolute total, largest first.
func (s *reportingService) ByCategory(ctx context.Context, userID string, period domain.PeriodQuery, txnType *domain.TransactionType) ([]domain.CategoryTotal, error) {
	dateRange := domain.ResolveDateRange(period)

	rows, err := s.reportingRepo.GetCategoryTotals(ctx, userID, dateRange, txnType)
	if err != nil {
		return nil, s.storeError(ctx, err, "failed to compute category totals", rangeAttrs(dateRange)...)
	}

	for i := range rows {
		if rows[i].CategoryID == nil || rows[i].CategoryName == "" {
			rows[i].CategoryName = domain.UncategorizedName
		}
		if rows[i].Type == domain.Expense {
			rows[i].Total = rows[i].Total.Neg()
		}
	}
	sortByMagnitude(rows)

	s.LogDebug(ctx, "Category report generated", slog.Int("row_count", len(rows)))
	return rows, nil
}

func sortByMagnitude(rows []domain.CategoryTotal) {
	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].Total.Abs().Cmp(rows[j].Total.Abs()); c != 0 {
			return c > 0
		}
		if rows[i].CategoryName != rows[j].CategoryName {
			return rows[i].CategoryName < rows[j].CategoryName
		}
		return rows[i].Type < rows[j].Type
	})
}

// Monthly buckets paid income and expense by calendar month of year. Months with no
// activity are present with zero totals.
func (s *reportingService) Monthly(ctx context.Context, userID string, year *int) (*domain.MonthlyReport, error) {
	y := s.now().UTC().Year()
	if year != nil {
		y = *year
	}

	totals, err := s.reportingRepo.GetMonthlyTotals(ctx, userID, y)
	if err != nil {
		return nil, s.storeError(ctx, err, "failed to compute monthly totals", slog.Int("year", y))
	}

	report := &domain.MonthlyReport{Year: y, Data: make([]domain.MonthlyBucket, 12)}
	for i := range report.Data {
		report.Data[i] = domain.MonthlyBucket{
			Month:   i + 1,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Balance: decimal.Zero,
		}
	}
	for _, t := range totals {
		if t.Month < 1 || t.Month > 12 {
			s.LogError(ctx, errMonthOutOfRange, "Ignoring monthly bucket", slog.Int("month", t.Month))
			continue
		}
		b := &report.Data[t.Month-1]
		b.Income = b.Income.Add(t.Income)
		b.Expense = b.Expense.Add(t.Expense)
		b.Balance = b.Income.Sub(b.Expense)
	}
	return report, nil
}
