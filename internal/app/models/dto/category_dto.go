package dto

import (
	"github.com/emrekoc/schoolforum/internal/app/models"
)

// CreateCategoryRequest is the request body for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required" example:"Math"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty" example:"#3498db"`
	Icon        string `json:"icon,omitempty" example:"calculator"`
}

// UpdateCategoryRequest is the request body for updating a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// CategoryResponse wraps a single category: {"category": {...}}
type CategoryResponse struct {
	Category *models.Category `json:"category"`
}

// CategoryListResponse is the category listing body
type CategoryListResponse struct {
	Categories []models.Category `json:"categories"`
}
