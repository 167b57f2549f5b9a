package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainTransactionWithRefs(t *testing.T) {
	now := time.Now().UTC()
	categoryID := "cat-1"
	categoryName := "Food"
	color := "#ff0000"

	row := models.TransactionWithRefs{
		Transaction: models.Transaction{
			TransactionID: "txn-1",
			UserID:        "user-1",
			Description:   "Groceries",
			Amount:        decimal.RequireFromString("40.50"),
			Type:          "expense",
			Date:          now,
			IsPaid:        true,
			AccountID:     "acc-1",
			CategoryID:    &categoryID,
			AuditFields:   models.AuditFields{CreatedAt: now, UpdatedAt: now},
		},
		AccountName:   "Wallet",
		AccountType:   "cash",
		CategoryName:  &categoryName,
		CategoryColor: &color,
	}

	got := ToDomainTransactionWithRefs(row)
	assert.Equal(t, domain.Expense, got.Type)
	require.NotNil(t, got.Account)
	assert.Equal(t, domain.Cash, got.Account.AccountType)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Food", got.Category.Name)
	assert.Equal(t, &color, got.Category.Color)
	assert.Nil(t, got.Category.Icon)

	row.CategoryID = nil
	row.CategoryName = nil
	got = ToDomainTransactionWithRefs(row)
	assert.Nil(t, got.Category)
	assert.Nil(t, got.CategoryID)
}

func TestAccountRoundTrip(t *testing.T) {
	bank := "Nubank"
	acc := domain.Account{
		AccountID:   "acc-1",
		UserID:      "user-1",
		Name:        "Main",
		AccountType: domain.Checking,
		Bank:        &bank,
		Balance:     decimal.RequireFromString("10.25"),
		Currency:    "BRL",
		IsActive:    true,
	}
	assert.Equal(t, acc, ToDomainAccount(ToModelAccount(acc)))
}
