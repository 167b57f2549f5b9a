package accounting

import (
	"sort"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceChanges computes the per-account balance deltas that move the ledger from
// the state where `before` exists to the state where `after` exists.
//
// before == nil is a create, after == nil is a delete. For an update the old
// contribution is reversed on the old account and the new contribution applied on
// the new account, so a move between accounts is handled the same way.
// Accounts whose delta nets to zero are left out.
func BalanceChanges(before, after *domain.Transaction) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal, 2)

	if before != nil {
		add(changes, before.AccountID, before.Contribution().Neg())
	}
	if after != nil {
		add(changes, after.AccountID, after.Contribution())
	}

	for accountID, delta := range changes {
		if delta.IsZero() {
			delete(changes, accountID)
		}
	}
	return changes
}

func add(changes map[string]decimal.Decimal, accountID string, delta decimal.Decimal) {
	if current, ok := changes[accountID]; ok {
		changes[accountID] = current.Add(delta)
		return
	}
	changes[accountID] = delta
}

// SortedAccountIDs returns the keys of changes in a stable order so that concurrent
// units of work lock account rows in the same sequence.
func SortedAccountIDs(changes map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(changes))
	for id := range changes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ExpectedBalances sums the contribution of every transaction per account.
// An account balance must equal its opening balance plus this sum.
func ExpectedBalances(transactions []domain.Transaction) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)
	for _, txn := range transactions {
		add(balances, txn.AccountID, txn.Contribution())
	}
	return balances
}
