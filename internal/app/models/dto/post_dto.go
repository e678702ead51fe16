package dto

import (
	"github.com/emrekoc/schoolforum/internal/app/models"
)

// CreatePostRequest is the request body for creating a post
type CreatePostRequest struct {
	Title      string   `json:"title" binding:"required" example:"Homework question"`
	Content    string   `json:"content" binding:"required"`
	CategoryID int64    `json:"categoryId" binding:"required" example:"1"`
	Tags       []string `json:"tags,omitempty"`
}

// UpdatePostRequest is the request body for editing a post. The author and
// category references stay immutable.
type UpdatePostRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags,omitempty"`
}

// CreateReplyRequest is the request body for appending a reply
type CreateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostResponse wraps a single post: {"post": {...}}
type PostResponse struct {
	Post *models.Post `json:"post"`
}

// PostListResponse is the paginated post listing body
type PostListResponse struct {
	Posts       []models.Post `json:"posts"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Total       int64         `json:"total"`
}
