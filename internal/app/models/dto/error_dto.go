package dto

// ErrorResponse is the standard error body: {"error": "..."}
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid credentials"`
}

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field" example:"grade"`
	Message string `json:"message" example:"grade is required for students"`
}

// ValidationErrorResponse is the error body for validation failures:
// {"errors": [{"field": "...", "message": "..."}]}
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

// NewValidationErrorResponse creates a field-level validation error response
func NewValidationErrorResponse(errors []FieldError) *ValidationErrorResponse {
	return &ValidationErrorResponse{Errors: errors}
}
