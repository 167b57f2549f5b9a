package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// CategoryReader defines owner scoped read operations for categories
type CategoryReader interface {
	FindCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)

	// ListCategories returns the owner's categories ordered by name, optionally of one type.
	ListCategories(ctx context.Context, userID string, categoryType *domain.TransactionType) ([]domain.Category, error)

	// CountTransactionsByCategory counts transactions that still reference the category.
	CountTransactionsByCategory(ctx context.Context, userID string, categoryID string) (int64, error)
}

// CategoryWriter defines write operations for categories.
// Save and Update report apperrors.ErrDuplicate on a (owner, name, type) clash.
type CategoryWriter interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes the row only while no transaction references it.
	// A referenced category yields apperrors.ErrConflict.
	DeleteCategory(ctx context.Context, userID string, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
