package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense movement on an account.
// Amount is always positive; the direction is carried by Type.
type Transaction struct {
	TransactionID string          `json:"id"`
	UserID        string          `json:"userId"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	Date          time.Time       `json:"date"`
	IsPaid        bool            `json:"isPaid"`
	Notes         *string         `json:"notes,omitempty"`
	AccountID     string          `json:"accountId"`
	CategoryID    *string         `json:"categoryId"`
	AuditFields

	// Populated on reads only.
	Account  *AccountSummary  `json:"account,omitempty"`
	Category *CategorySummary `json:"category,omitempty"`
}

// SignedAmount returns amount for income and -amount for expense.
func SignedAmount(amount decimal.Decimal, t TransactionType) decimal.Decimal {
	if t == Expense {
		return amount.Neg()
	}
	return amount
}

// Contribution is what the transaction currently adds to its account balance.
// Unpaid transactions contribute nothing.
func (t Transaction) Contribution() decimal.Decimal {
	if !t.IsPaid {
		return decimal.Zero
	}
	return SignedAmount(t.Amount, t.Type)
}

// TransactionFilter narrows a transaction listing. Zero values mean "no filter".
type TransactionFilter struct {
	Type       TransactionType
	AccountID  string
	CategoryID string
	Range      DateRange
	Limit      int
	Offset     int
}
