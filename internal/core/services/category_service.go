package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/google/uuid"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	now          func() time.Time
}

// CategoryServiceOption is a functional option for configuring the category service
type CategoryServiceOption func(*categoryService)

// WithCategoryClock overrides time.Now, mostly for tests.
func WithCategoryClock(now func() time.Time) CategoryServiceOption {
	return func(s *categoryService) {
		s.now = now
	}
}

// NewCategoryService creates a new category service
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade, options ...CategoryServiceOption) portssvc.CategorySvcFacade {
	svc := &categoryService{categoryRepo: repo, now: time.Now}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// duplicateCategoryMessage is shared by create and rename.
const duplicateCategoryMessage = "Category with this name and type already exists"

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("Name is required")
	}
	if !req.Type.IsValid() {
		return nil, apperrors.NewValidationError("Type must be income or expense")
	}

	now := s.now().UTC()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Type:        req.Type,
		Color:       req.Color,
		Icon:        req.Icon,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(duplicateCategoryMessage)
		}
		return nil, s.storeError(ctx, err, "failed to save category", slog.String("category_id", category.CategoryID))
	}

	s.LogInfo(ctx, "Category created successfully", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	return fetchOwned(ctx, &s.BaseService, "category", categoryID, func() (*domain.Category, error) {
		return s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	})
}

func (s *categoryService) ListCategories(ctx context.Context, userID string, categoryType *domain.TransactionType) ([]domain.Category, error) {
	if categoryType != nil && !categoryType.IsValid() {
		return nil, apperrors.NewValidationError("Type must be income or expense")
	}
	categories, err := s.categoryRepo.ListCategories(ctx, userID, categoryType)
	if err != nil {
		return nil, s.storeError(ctx, err, "failed to list categories")
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

// UpdateCategory patches a category. Changing the type of a category that is in use
// would break the category/transaction type agreement, so it is rejected.
func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.GetCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("Name cannot be empty")
		}
		category.Name = name
	}
	if req.Type != nil && *req.Type != category.Type {
		if !req.Type.IsValid() {
			return nil, apperrors.NewValidationError("Type must be income or expense")
		}
		count, err := s.categoryRepo.CountTransactionsByCategory(ctx, userID, categoryID)
		if err != nil {
			return nil, s.storeError(ctx, err, "failed to count category transactions", slog.String("category_id", categoryID))
		}
		if count > 0 {
			return nil, apperrors.NewConflictError("Cannot change the type of a category that has transactions")
		}
		category.Type = *req.Type
	}
	if req.Color != nil {
		category.Color = req.Color
	}
	if req.Icon != nil {
		category.Icon = req.Icon
	}
	category.UpdatedAt = s.now().UTC()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			return nil, apperrors.NewConflictError(duplicateCategoryMessage)
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.NewNotFoundError("category")
		}
		return nil, s.storeError(ctx, err, "failed to update category", slog.String("category_id", categoryID))
	}
	return category, nil
}

// DeleteCategory removes a category that no transaction references.
func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	if _, err := s.GetCategoryByID(ctx, userID, categoryID); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountTransactionsByCategory(ctx, userID, categoryID)
	if err != nil {
		return s.storeError(ctx, err, "failed to count category transactions", slog.String("category_id", categoryID))
	}
	if count > 0 {
		s.LogDebug(ctx, "Refusing to delete referenced category", slog.String("category_id", categoryID), slog.Int64("transactions", count))
		return apperrors.NewConflictError("Cannot delete category with existing transactions")
	}

	if err := s.categoryRepo.DeleteCategory(ctx, userID, categoryID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return apperrors.NewNotFoundError("category")
		case errors.Is(err, apperrors.ErrConflict):
			return apperrors.NewConflictError("Cannot delete category with existing transactions")
		}
		return s.storeError(ctx, err, "failed to delete category", slog.String("category_id", categoryID))
	}

	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}
