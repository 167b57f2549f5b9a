package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// rangeConditions appends the date range predicates on t.date to conds/args.
func rangeConditions(conds []string, args []any, dateRange domain.DateRange) ([]string, []any) {
	if dateRange.Start != nil {
		args = append(args, *dateRange.Start)
		conds = append(conds, fmt.Sprintf("t.date >= $%d", len(args)))
	}
	if dateRange.End != nil {
		args = append(args, *dateRange.End)
		conds = append(conds, fmt.Sprintf("t.date < $%d", len(args)))
	}
	return conds, args
}

// GetSummaryTotals sums paid amounts per type and counts every transaction in range.
func (r *reportingRepository) GetSummaryTotals(ctx context.Context, userID string, dateRange domain.DateRange) (domain.Summary, error) {
	conds, args := rangeConditions([]string{"t.user_id = $1"}, []any{userID}, dateRange)
	query := `
		SELECT
			COALESCE(SUM(t.amount) FILTER (WHERE t.is_paid AND t.type = 'income'), 0)  AS total_income,
			COALESCE(SUM(t.amount) FILTER (WHERE t.is_paid AND t.type = 'expense'), 0) AS total_expense,
			COUNT(*) AS transactions_count
		FROM transactions t
		WHERE ` + strings.Join(conds, " AND ")

	var s domain.Summary
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&s.TotalIncome, &s.TotalExpense, &s.TransactionsCount); err != nil {
		return domain.Summary{}, fmt.Errorf("error querying summary totals: %w", err)
	}
	return s, nil
}

// GetCategoryTotals groups paid transactions by category and type. Rows whose
// category was removed come back with a nil id.
func (r *reportingRepository) GetCategoryTotals(ctx context.Context, userID string, dateRange domain.DateRange, txnType *domain.TransactionType) ([]domain.CategoryTotal, error) {
	conds, args := rangeConditions([]string{"t.user_id = $1", "t.is_paid"}, []any{userID}, dateRange)
	if txnType != nil {
		args = append(args, string(*txnType))
		conds = append(conds, fmt.Sprintf("t.type = $%d", len(args)))
	}

	query := `
		SELECT c.id, COALESCE(c.name, ''), c.color, c.icon, t.type, SUM(t.amount) AS total, COUNT(*) AS count
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE ` + strings.Join(conds, " AND ") + `
		GROUP BY c.id, c.name, c.color, c.icon, t.type
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying category totals: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryTotal{}
	for rows.Next() {
		var row domain.CategoryTotal
		var txnTypeStr string
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Color, &row.Icon, &txnTypeStr, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("error scanning category total row: %w", err)
		}
		row.Type = domain.TransactionType(txnTypeStr)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", err)
	}
	return result, nil
}

// GetMonthlyTotals sums paid transactions of year by UTC calendar month.
func (r *reportingRepository) GetMonthlyTotals(ctx context.Context, userID string, year int) ([]domain.MonthlyBucket, error) {
	start, end := domain.YearBounds(year)
	query := `
		SELECT
			EXTRACT(MONTH FROM t.date AT TIME ZONE 'UTC')::int AS month,
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'income'), 0)  AS income,
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'expense'), 0) AS expense
		FROM transactions t
		WHERE t.user_id = $1 AND t.is_paid AND t.date >= $2 AND t.date < $3
		GROUP BY month
		ORDER BY month
	`

	rows, err := r.Pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly totals: %w", err)
	}
	defer rows.Close()

	result := []domain.MonthlyBucket{}
	for rows.Next() {
		var b domain.MonthlyBucket
		var income, expense decimal.Decimal
		if err := rows.Scan(&b.Month, &income, &expense); err != nil {
			return nil, fmt.Errorf("error scanning monthly row: %w", err)
		}
		b.Income = income
		b.Expense = expense
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly rows: %w", err)
	}
	return result, nil
}
