package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// Category errors
var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
)

// Post errors
var (
	ErrPostNotFound = errors.New("post not found")
	ErrPostLocked   = errors.New("post is locked")
)

// Storage errors
var (
	ErrStorage = errors.New("storage error")
)

// FieldError carries field-level detail for a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates field errors and unwraps to ErrValidationFailed
// so callers can match the whole class with errors.Is.
type ValidationErrors struct {
	Fields []FieldError
}

// Error implements the error interface
func (e *ValidationErrors) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	return e.Fields[0].Field + ": " + e.Fields[0].Message
}

// Unwrap implements errors.Unwrap
func (e *ValidationErrors) Unwrap() error {
	return ErrValidationFailed
}

// Add appends a field error and returns the receiver for chaining.
func (e *ValidationErrors) Add(field, message string) *ValidationErrors {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any field error was recorded.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Fields) > 0
}

// NewValidationErrors creates an empty validation error container.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
