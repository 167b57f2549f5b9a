package dto

import (
	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/utils"
)

// PeriodParams are the date selectors shared by the summary and by-category reports.
type PeriodParams struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Year      *int   `form:"year" binding:"omitempty,min=1900,max=9999"`
	Month     *int   `form:"month" binding:"omitempty,min=1,max=12"`
}

// ByCategoryParams adds the optional type filter.
type ByCategoryParams struct {
	PeriodParams
	Type string `form:"type" binding:"omitempty,oneof=income expense"`
}

// MonthlyParams selects the year of the monthly report. Defaults to the current year.
type MonthlyParams struct {
	Year *int `form:"year" binding:"omitempty,min=1900,max=9999"`
}

// ToPeriodQuery parses the textual dates. endDate is inclusive on the wire and
// exclusive in the returned query.
func (p PeriodParams) ToPeriodQuery() (domain.PeriodQuery, error) {
	q := domain.PeriodQuery{Year: p.Year, Month: p.Month}
	if p.StartDate != "" {
		start, _, err := utils.ParseDate(p.StartDate)
		if err != nil {
			return q, apperrors.NewValidationError("startDate: " + err.Error())
		}
		q.StartDate = &start
	}
	if p.EndDate != "" {
		end, err := utils.ParseRangeEnd(p.EndDate)
		if err != nil {
			return q, apperrors.NewValidationError("endDate: " + err.Error())
		}
		q.EndDate = &end
	}
	if q.StartDate != nil && q.EndDate != nil && !q.StartDate.Before(*q.EndDate) {
		return q, apperrors.NewValidationError("startDate must not be after endDate")
	}
	return q, nil
}

// TypeFilter returns the type selector or nil when absent.
func (p ByCategoryParams) TypeFilter() *domain.TransactionType {
	if p.Type == "" {
		return nil
	}
	t := domain.TransactionType(p.Type)
	return &t
}
