package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name     string             `json:"name" binding:"required,max=100"`
	Type     domain.AccountType `json:"type" binding:"required,oneof=checking savings credit_card cash"`
	Bank     *string            `json:"bank" binding:"omitempty,max=100"`
	Balance  *decimal.Decimal   `json:"balance"`                            // Opening balance, defaults to 0
	Currency *string            `json:"currency" binding:"omitempty,len=3"` // Defaults to the configured currency
}

// UpdateAccountRequest defines the fields that may be changed on an account.
// Pointers distinguish "not provided" from zero values. Balance is deliberately absent:
// it only moves through transactions.
type UpdateAccountRequest struct {
	Name     *string             `json:"name" binding:"omitempty,min=1,max=100"`
	Type     *domain.AccountType `json:"type" binding:"omitempty,oneof=checking savings credit_card cash"`
	Bank     *string             `json:"bank" binding:"omitempty,max=100"`
	Currency *string             `json:"currency" binding:"omitempty,len=3"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID string             `json:"id"`
	Name      string             `json:"name"`
	Type      domain.AccountType `json:"type"`
	Bank      *string            `json:"bank"`
	Balance   decimal.Decimal    `json:"balance"`
	Currency  string             `json:"currency"`
	IsActive  bool               `json:"isActive"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID,
		Name:      acc.Name,
		Type:      acc.AccountType,
		Bank:      acc.Bank,
		Balance:   acc.Balance,
		Currency:  acc.Currency,
		IsActive:  acc.IsActive,
		CreatedAt: acc.CreatedAt,
		UpdatedAt: acc.UpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
