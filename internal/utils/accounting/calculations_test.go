package accounting

import (
	"testing"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txn(accountID, amount string, t domain.TransactionType, paid bool) *domain.Transaction {
	return &domain.Transaction{AccountID: accountID, Amount: dec(amount), Type: t, IsPaid: paid}
}

func TestBalanceChanges(t *testing.T) {
	tests := []struct {
		name   string
		before *domain.Transaction
		after  *domain.Transaction
		want   map[string]string
	}{
		{
			name:  "create paid income",
			after: txn("acc-1", "100.00", domain.Income, true),
			want:  map[string]string{"acc-1": "100"},
		},
		{
			name:  "create paid expense",
			after: txn("acc-1", "100.00", domain.Expense, true),
			want:  map[string]string{"acc-1": "-100"},
		},
		{
			name:  "create unpaid touches nothing",
			after: txn("acc-1", "100.00", domain.Expense, false),
			want:  map[string]string{},
		},
		{
			name:   "amount change reverses and applies",
			before: txn("acc-1", "100.00", domain.Income, true),
			after:  txn("acc-1", "70.00", domain.Income, true),
			want:   map[string]string{"acc-1": "-30"},
		},
		{
			name:   "type flip doubles the swing",
			before: txn("acc-1", "25", domain.Income, true),
			after:  txn("acc-1", "25", domain.Expense, true),
			want:   map[string]string{"acc-1": "-50"},
		},
		{
			name:   "paid to unpaid reverses",
			before: txn("acc-1", "100", domain.Expense, true),
			after:  txn("acc-1", "100", domain.Expense, false),
			want:   map[string]string{"acc-1": "100"},
		},
		{
			name:   "unpaid to paid applies",
			before: txn("acc-1", "40", domain.Income, false),
			after:  txn("acc-1", "40", domain.Income, true),
			want:   map[string]string{"acc-1": "40"},
		},
		{
			name:   "description only change is a no-op",
			before: txn("acc-1", "40", domain.Income, true),
			after:  txn("acc-1", "40.00", domain.Income, true),
			want:   map[string]string{},
		},
		{
			name:   "move between accounts",
			before: txn("acc-1", "30", domain.Expense, true),
			after:  txn("acc-2", "30", domain.Expense, true),
			want:   map[string]string{"acc-1": "30", "acc-2": "-30"},
		},
		{
			name:   "delete paid expense",
			before: txn("acc-1", "30.00", domain.Expense, true),
			want:   map[string]string{"acc-1": "30"},
		},
		{
			name:   "delete unpaid",
			before: txn("acc-1", "30.00", domain.Expense, false),
			want:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BalanceChanges(tt.before, tt.after)
			assert.Len(t, got, len(tt.want))
			for accountID, want := range tt.want {
				delta, ok := got[accountID]
				if assert.True(t, ok, "missing delta for %s", accountID) {
					assert.True(t, dec(want).Equal(delta), "account %s: want %s got %s", accountID, want, delta)
				}
			}
		})
	}
}

func TestSortedAccountIDs(t *testing.T) {
	changes := map[string]decimal.Decimal{"c": dec("1"), "a": dec("2"), "b": dec("3")}
	assert.Equal(t, []string{"a", "b", "c"}, SortedAccountIDs(changes))
}

func TestExpectedBalances(t *testing.T) {
	txns := []domain.Transaction{
		*txn("acc-1", "100", domain.Income, true),
		*txn("acc-1", "30", domain.Expense, true),
		*txn("acc-1", "999", domain.Expense, false),
		*txn("acc-2", "5", domain.Expense, true),
	}
	got := ExpectedBalances(txns)
	assert.True(t, dec("70").Equal(got["acc-1"]))
	assert.True(t, dec("-5").Equal(got["acc-2"]))
}
