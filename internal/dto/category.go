package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name  string                 `json:"name" binding:"required,max=50"`
	Type  domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Color *string                `json:"color" binding:"omitempty,max=20"`
	Icon  *string                `json:"icon" binding:"omitempty,max=50"`
}

// UpdateCategoryRequest defines the mutable category fields.
type UpdateCategoryRequest struct {
	Name  *string                 `json:"name" binding:"omitempty,min=1,max=50"`
	Type  *domain.TransactionType `json:"type" binding:"omitempty,oneof=income expense"`
	Color *string                 `json:"color" binding:"omitempty,max=20"`
	Icon  *string                 `json:"icon" binding:"omitempty,max=50"`
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	Type string `form:"type" binding:"omitempty,oneof=income expense"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string                 `json:"id"`
	Name       string                 `json:"name"`
	Type       domain.TransactionType `json:"type"`
	Color      *string                `json:"color"`
	Icon       *string                `json:"icon"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Type:       c.Type,
		Color:      c.Color,
		Icon:       c.Icon,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
