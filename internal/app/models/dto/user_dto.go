package dto

import (
	"time"

	"github.com/emrekoc/schoolforum/internal/app/models"
)

// UserResponse is the public representation of a user. The password hash is
// never part of it.
type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	FullName    string     `json:"fullName"`
	Role        string     `json:"role"`
	Grade       *int       `json:"grade,omitempty"`
	Subject     *string    `json:"subject,omitempty"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		Role:        string(user.Role),
		Grade:       user.Grade,
		Subject:     user.Subject,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// UpdateProfileRequest is the request body for self profile updates.
// Username and email are immutable through this endpoint.
type UpdateProfileRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Grade     *int    `json:"grade,omitempty"`
	Subject   *string `json:"subject,omitempty"`
}

// UserListResponse is the paginated user listing body
type UserListResponse struct {
	Users       []UserResponse `json:"users"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	Total       int64          `json:"total"`
}
