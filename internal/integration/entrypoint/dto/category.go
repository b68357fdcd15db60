package dto

import (
	"github.com/homeledger/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for creating an expense category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest represents the request body for updating an expense category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryResponse represents an expense category.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CategoryListResponse represents the category list.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts an ExpenseCategory entity to a CategoryResponse DTO.
func ToCategoryResponse(c *entity.ExpenseCategory) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

// ToCategoryListResponse converts categories to a CategoryListResponse DTO.
func ToCategoryListResponse(categories []*entity.ExpenseCategory) CategoryListResponse {
	items := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, ToCategoryResponse(c))
	}
	return CategoryListResponse{Categories: items}
}
