package model

import (
	"fmt"
	"time"
)

// User represents a library member account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Roles.
const (
	RoleLibrarian = "librarian"
	RoleMember    = "member"
)

// RoleAtLeast checks if role meets or exceeds the minimum required role.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleLibrarian: 2,
		RoleMember:    1,
	}
	if levels[role] == 0 || levels[minimum] == 0 {
		return false
	}
	return levels[role] >= levels[minimum]
}

// ValidatePassword enforces the minimum password policy.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
