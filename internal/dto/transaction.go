package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Date accepts YYYY-MM-DD or RFC3339 and defaults to now; IsPaid defaults to true.
type CreateTransactionRequest struct {
	Description string                 `json:"description" binding:"required,max=255"`
	Amount      *decimal.Decimal       `json:"amount" binding:"required"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Date        *string                `json:"date"`
	IsPaid      *bool                  `json:"isPaid"`
	Notes       *string                `json:"notes" binding:"omitempty,max=1000"`
	AccountID   string                 `json:"accountId" binding:"required"`
	CategoryID  string                 `json:"categoryId" binding:"required"`
}

// UpdateTransactionRequest is a partial patch; nil fields keep their current value.
type UpdateTransactionRequest struct {
	Description *string                 `json:"description" binding:"omitempty,min=1,max=255"`
	Amount      *decimal.Decimal        `json:"amount"`
	Type        *domain.TransactionType `json:"type" binding:"omitempty,oneof=income expense"`
	Date        *string                 `json:"date"`
	IsPaid      *bool                   `json:"isPaid"`
	Notes       *string                 `json:"notes" binding:"omitempty,max=1000"`
	AccountID   *string                 `json:"accountId" binding:"omitempty,min=1"`
	CategoryID  *string                 `json:"categoryId" binding:"omitempty,min=1"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Type       string `form:"type" binding:"omitempty,oneof=income expense"`
	AccountID  string `form:"accountId"`
	CategoryID string `form:"categoryId"`
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit      int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
}

// AccountRef is the account summary embedded in transaction responses.
type AccountRef struct {
	Name string             `json:"name"`
	Type domain.AccountType `json:"type"`
}

// CategoryRef is the category summary embedded in transaction responses.
type CategoryRef struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"id"`
	Description   string                 `json:"description"`
	Amount        decimal.Decimal        `json:"amount"`
	Type          domain.TransactionType `json:"type"`
	Date          time.Time              `json:"date"`
	IsPaid        bool                   `json:"isPaid"`
	Notes         *string                `json:"notes"`
	AccountID     string                 `json:"accountId"`
	CategoryID    *string                `json:"categoryId"`
	Account       *AccountRef            `json:"account,omitempty"`
	Category      *CategoryRef           `json:"category"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// PaginationResponse describes the page that was returned.
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	res := TransactionResponse{
		TransactionID: t.TransactionID,
		Description:   t.Description,
		Amount:        t.Amount,
		Type:          t.Type,
		Date:          t.Date,
		IsPaid:        t.IsPaid,
		Notes:         t.Notes,
		AccountID:     t.AccountID,
		CategoryID:    t.CategoryID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.Account != nil {
		res.Account = &AccountRef{Name: t.Account.Name, Type: t.Account.AccountType}
	}
	if t.Category != nil {
		res.Category = &CategoryRef{Name: t.Category.Name, Color: t.Category.Color, Icon: t.Category.Icon}
	}
	return res
}

func ToListTransactionResponse(transactions []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		res[i] = ToTransactionResponse(&transactions[i])
	}
	return res
}
