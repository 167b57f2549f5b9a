package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedName labels transactions whose category no longer exists.
const UncategorizedName = "uncategorized"

// DateRange is a half open interval [Start, End). A nil bound is unbounded.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether the range applies no filter at all.
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// PeriodQuery holds the raw period selectors of a report request.
// EndDate is already exclusive (see utils.ParseRangeEnd).
type PeriodQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
	Year      *int
	Month     *int
}

// ResolveDateRange applies the selector precedence: explicit start/end dates,
// then year+month (calendar month), then year (calendar year), then no filter.
// A month without a year is ignored. All calendar math is done in UTC.
func ResolveDateRange(q PeriodQuery) DateRange {
	switch {
	case q.StartDate != nil || q.EndDate != nil:
		return DateRange{Start: q.StartDate, End: q.EndDate}
	case q.Year != nil && q.Month != nil:
		start := time.Date(*q.Year, time.Month(*q.Month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		return DateRange{Start: &start, End: &end}
	case q.Year != nil:
		start, end := YearBounds(*q.Year)
		return DateRange{Start: &start, End: &end}
	}
	return DateRange{}
}

// YearBounds returns [Jan 1 of year, Jan 1 of year+1) in UTC.
func YearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// Summary aggregates paid income and expense over a range.
// TransactionsCount counts every transaction in range, paid or not.
type Summary struct {
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpense      decimal.Decimal `json:"totalExpense"`
	Balance           decimal.Decimal `json:"balance"`
	TransactionsCount int64           `json:"transactionsCount"`
}

// CategoryTotal is one row of the by-category report.
// Total is signed: expense groups are negative.
type CategoryTotal struct {
	CategoryID   *string         `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Color        *string         `json:"color,omitempty"`
	Icon         *string         `json:"icon,omitempty"`
	Type         TransactionType `json:"type"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}

// MonthlyBucket holds paid totals for one calendar month (1-12).
type MonthlyBucket struct {
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// MonthlyReport always carries twelve buckets, January first.
type MonthlyReport struct {
	Year int             `json:"year"`
	Data []MonthlyBucket `json:"data"`
}
