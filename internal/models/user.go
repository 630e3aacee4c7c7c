package models

import (
	"time"
)

// User represents a registered account. Authentication itself is handled by
// the surrounding site; this core only needs the identity for comment gating
// and for linking purchases to accounts.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	"admin":  true,
	"editor": true,
	"viewer": true,
}

// Identity is the authenticated caller extracted from the bearer token.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the identity may call administrator endpoints.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == "admin"
}
