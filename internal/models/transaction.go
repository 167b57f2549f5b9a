package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors a row of the transactions table.
type Transaction struct {
	TransactionID string          `db:"id"`
	UserID        string          `db:"user_id"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"type"`
	Date          time.Time       `db:"date"`
	IsPaid        bool            `db:"is_paid"`
	Notes         *string         `db:"notes"`       // Nullable
	AccountID     string          `db:"account_id"`
	CategoryID    *string         `db:"category_id"` // Nullable, cleared when a category is removed
	AuditFields
}

// TransactionWithRefs is a transaction row joined with its account and category
// display columns.
type TransactionWithRefs struct {
	Transaction
	AccountName   string  `db:"account_name"`
	AccountType   string  `db:"account_type"`
	CategoryName  *string `db:"category_name"`
	CategoryColor *string `db:"category_color"`
	CategoryIcon  *string `db:"category_icon"`
}
