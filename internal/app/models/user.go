package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Username    string     `json:"username" db:"username" example:"jdoe"`                                   // Unique username
	Email       string     `json:"email" db:"email" example:"jdoe@school.edu"`                              // Unique email address, stored lowercase
	Password    string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FirstName   string     `json:"firstName" db:"first_name" example:"John"`                                // User's first name
	LastName    string     `json:"lastName" db:"last_name" example:"Doe"`                                   // User's last name
	Role        Role       `json:"role" db:"role" example:"STUDENT"`                                        // User's role (STUDENT, TEACHER or ADMIN)
	Grade       *int       `json:"grade,omitempty" db:"grade" example:"9"`                                  // Grade, required for students (nullable)
	Subject     *string    `json:"subject,omitempty" db:"subject" example:"Math"`                           // Subject, required for teachers (nullable)
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the user account is active
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                // Timestamp when the user was last updated
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsModerator reports whether the user may moderate content (teachers and admins).
func (u *User) IsModerator() bool {
	switch u.Role {
	case RoleTeacher, RoleAdmin:
		return true
	case RoleStudent:
		return false
	}
	return false
}
