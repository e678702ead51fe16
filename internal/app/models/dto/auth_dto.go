package dto

// RegisterRequest is the request body for user registration.
// Role defaults to STUDENT when omitted. Grade is required for students,
// subject for teachers.
type RegisterRequest struct {
	Username  string  `json:"username" binding:"required" example:"jdoe"`
	Email     string  `json:"email" binding:"required" example:"jdoe@school.edu"`
	Password  string  `json:"password" binding:"required" example:"Secret123"`
	FirstName string  `json:"firstName" binding:"required" example:"John"`
	LastName  string  `json:"lastName" binding:"required" example:"Doe"`
	Role      string  `json:"role,omitempty" example:"STUDENT"`
	Grade     *int    `json:"grade,omitempty" example:"9"`
	Subject   *string `json:"subject,omitempty" example:"Math"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"jdoe@school.edu"`
	Password string `json:"password" binding:"required" example:"Secret123"`
}

// AuthResponse is returned on successful registration or login
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
