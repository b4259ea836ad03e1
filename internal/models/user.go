// Package models defines the entity types held by the document store and
// serialized to durable storage: categories, doc pages, and users.
package models

// Role represents a user's permission level in the portal.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleUser        Role = "user"
	RoleGuideEditor Role = "guide editor"
)

// User represents a portal account. Authentication is a demo placeholder:
// every account accepts the shared demo password, which the document store
// checks against a bcrypt hash.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName returns the user's name, falling back to the email address.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleGuideEditor:
		return true
	}
	return false
}
