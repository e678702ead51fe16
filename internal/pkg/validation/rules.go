package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Username pattern - letters, digits, underscores, 3-30 chars
	UsernamePattern = `^[a-zA-Z0-9_]{3,30}$`

	// Hex color pattern, e.g. #3498db
	HexColorPattern = `^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Username *regexp.Regexp
	HexColor *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	Username: regexp.MustCompile(UsernamePattern),
	HexColor: regexp.MustCompile(HexColorPattern),
}

// NormalizeEmail lowercases and trims an email address. Uniqueness checks and
// storage always operate on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether the normalized email matches the expected format.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(NormalizeEmail(email))
}

// IsValidUsername reports whether the username matches the expected format.
func IsValidUsername(username string) bool {
	return CompiledPatterns.Username.MatchString(username)
}

// IsValidHexColor reports whether the value is a hex color like "#ff8800".
func IsValidHexColor(color string) bool {
	return CompiledPatterns.HexColor.MatchString(color)
}

// IsValidPassword checks password requirements: minimum length, at least one
// letter and one digit.
func IsValidPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// IsValidName checks first/last name length bounds.
func IsValidName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= NameMinLength && n <= NameMaxLength
}
