package domain

import "time"

// Role enumerates back-office access levels.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// ValidRole reports whether the value is a known role.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User is the domain model for back-office accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
