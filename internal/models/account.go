package models

import (
	"github.com/shopspring/decimal"
)

// Account mirrors a row of the accounts table.
type Account struct {
	AccountID   string          `db:"id"`
	UserID      string          `db:"user_id"`
	Name        string          `db:"name"`
	AccountType string          `db:"type"`
	Bank        *string         `db:"bank"` // Nullable
	Balance     decimal.Decimal `db:"balance"`
	Currency    string          `db:"currency"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}
