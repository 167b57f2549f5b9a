package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountLifecycle(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	userID := uuid.NewString()
	svc := services.NewAccountService(store, services.WithDefaultCurrency("usd"), services.WithAccountClock(clock))

	acc, err := svc.CreateAccount(ctx, userID, dto.CreateAccountRequest{Name: "Nubank", Type: domain.CreditCard, Bank: ptr("Nu")})
	require.NoError(t, err)
	assert.Equal(t, "USD", acc.Currency)
	assert.True(t, acc.Balance.IsZero())
	assert.True(t, acc.IsActive)
	assert.True(t, acc.CreatedAt.Equal(fixedNow))

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, userID, dto.CreateAccountRequest{Name: "x", Type: "investment"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("update leaves balance alone", func(t *testing.T) {
		updated, err := svc.UpdateAccount(ctx, userID, acc.AccountID, dto.UpdateAccountRequest{Name: ptr("Nu Card"), Currency: ptr("brl")})
		require.NoError(t, err)
		assert.Equal(t, "Nu Card", updated.Name)
		assert.Equal(t, "BRL", updated.Currency)
		assert.True(t, updated.Balance.Equal(acc.Balance))
	})

	t.Run("other owner cannot see it", func(t *testing.T) {
		_, err := svc.GetAccountByID(ctx, uuid.NewString(), acc.AccountID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.ErrorIs(t, svc.DeactivateAccount(ctx, uuid.NewString(), acc.AccountID), apperrors.ErrNotFound)
	})

	t.Run("deactivate hides from list but keeps the row", func(t *testing.T) {
		require.NoError(t, svc.DeactivateAccount(ctx, userID, acc.AccountID))

		list, err := svc.ListAccounts(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, list)

		got, err := svc.GetAccountByID(ctx, userID, acc.AccountID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})
}
