package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/Shad0wcrushers/IDGuides/internal/models"
)

// Validation limits for form fields.
const (
	maxTitleLen   = 300
	maxSlugLen    = 300
	maxContentLen = 100_000
	maxExcerptLen = 1_000
	maxNameLen    = 200
	maxEmailLen   = 320
)

// validateCategory checks category form inputs and returns the first
// error found.
func validateCategory(title, slug string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	return ""
}

// validatePage checks page form inputs and returns the first error found.
func validatePage(title, slug, content, excerpt string) string {
	if msg := validateCategory(title, slug); msg != "" {
		return msg
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "Excerpt is too long (max 1,000 characters)."
	}
	return ""
}

// validateUser checks user form inputs and returns the first error found.
func validateUser(name, email string, role models.Role) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return "A valid email is required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return "Email is too long."
	}
	if !models.ValidRole(string(role)) {
		return "Unknown role."
	}
	return ""
}
