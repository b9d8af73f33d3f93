// Package validation provides input validation utilities.
package validation

import (
	"regexp"
	"strings"

	"quill/internal/models"
)

// MinFieldLength is the minimum length for passwords, titles and content.
const MinFieldLength = 5

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsEmail checks basic email format.
func IsEmail(email string) bool {
	return len(email) <= 254 && emailRegex.MatchString(email)
}

// ValidateNewUser checks registration input and returns every violated rule,
// not just the first.
func ValidateNewUser(email, password string) []models.FieldError {
	var errs []models.FieldError
	if !IsEmail(email) {
		errs = append(errs, models.FieldError{Field: "email", Message: "Invalid email address."})
	}
	if strings.TrimSpace(password) == "" || len(password) < MinFieldLength {
		errs = append(errs, models.FieldError{Field: "password", Message: "Password too short!"})
	}
	return errs
}

// ValidatePostInput checks title and content for create/update, accumulating
// all violations.
func ValidatePostInput(title, content string) []models.FieldError {
	var errs []models.FieldError
	if strings.TrimSpace(title) == "" || len(title) < MinFieldLength {
		errs = append(errs, models.FieldError{Field: "title", Message: "Invalid title!"})
	}
	if strings.TrimSpace(content) == "" || len(content) < MinFieldLength {
		errs = append(errs, models.FieldError{Field: "content", Message: "Invalid content!"})
	}
	return errs
}
