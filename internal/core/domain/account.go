package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType describes what kind of money container an account is.
type AccountType string

const (
	Checking   AccountType = "checking"
	Savings    AccountType = "savings"
	CreditCard AccountType = "credit_card"
	Cash       AccountType = "cash"
)

// IsValid reports whether t is one of the supported account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Checking, Savings, CreditCard, Cash:
		return true
	}
	return false
}

// Account is a user owned money container.
// Balance is maintained by the ledger on every paid transaction mutation and is never
// recomputed on read.
type Account struct {
	AccountID   string          `json:"id"`
	UserID      string          `json:"userId"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"type"`
	Bank        *string         `json:"bank,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    string          `json:"currency"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// AccountSummary is the slice of an account embedded in transaction reads.
type AccountSummary struct {
	Name        string      `json:"name"`
	AccountType AccountType `json:"type"`
}
