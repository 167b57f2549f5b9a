package mapping

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
)

// ToModelTransaction converts a domain Transaction to its row form.
// Joined account/category summaries are read-only and dropped.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		Description:   d.Description,
		Amount:        d.Amount,
		Type:          string(d.Type),
		Date:          d.Date,
		IsPaid:        d.IsPaid,
		Notes:         d.Notes,
		AccountID:     d.AccountID,
		CategoryID:    d.CategoryID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a bare transaction row.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Description:   m.Description,
		Amount:        m.Amount,
		Type:          domain.TransactionType(m.Type),
		Date:          m.Date,
		IsPaid:        m.IsPaid,
		Notes:         m.Notes,
		AccountID:     m.AccountID,
		CategoryID:    m.CategoryID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionWithRefs converts a joined row, attaching the account and
// (when still present) category summaries.
func ToDomainTransactionWithRefs(m models.TransactionWithRefs) domain.Transaction {
	d := ToDomainTransaction(m.Transaction)
	d.Account = &domain.AccountSummary{
		Name:        m.AccountName,
		AccountType: domain.AccountType(m.AccountType),
	}
	if m.CategoryName != nil {
		d.Category = &domain.CategorySummary{
			Name:  *m.CategoryName,
			Color: m.CategoryColor,
			Icon:  m.CategoryIcon,
		}
	}
	return d
}
