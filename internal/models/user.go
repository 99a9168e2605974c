package models

import "fmt"

// Role is the closed set of privilege levels a user can hold.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole validates a role string at the registration boundary.
// Anything outside the known set is rejected rather than stored verbatim.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q, expected one of: admin, user", s)
	}
}

// IsAdmin reports whether the role grants admin-only access.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // never serialized
	Role         Role   `json:"role"`
}
