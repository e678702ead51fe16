package models

import "time"

// Category represents a discussion category based on the 'categories' table
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`               // Unique name, reserved even after soft delete
	Description string    `json:"description" db:"description"` // Short description shown in listings
	Color       string    `json:"color" db:"color"`             // Display color as hex, e.g. "#3498db"
	Icon        string    `json:"icon" db:"icon"`               // Icon identifier for clients
	CreatedBy   int64     `json:"createdBy" db:"created_by"`    // Creator user ID, immutable after creation
	IsActive    bool      `json:"isActive" db:"is_active"`      // Soft-delete flag
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Creator   *User `json:"creator,omitempty"`
	PostCount int64 `json:"postCount"` // Count of active posts, computed at query time
}
