package model

import "time"

// Role is the closed set of user roles.
type Role string

const (
	// RoleUser is the default role assigned on registration.
	RoleUser Role = "user"
	// RoleAdmin grants access to admin-only operations.
	RoleAdmin Role = "admin"
)

// IsAdmin reports whether the role carries admin capabilities.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User represents an authenticated user in the system.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"size:255;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role   `json:"role" gorm:"size:50;default:'user'"`

	// Password reset state; both are nil unless a reset is pending.
	ResetTokenHash      *string    `json:"-" gorm:"size:64;index"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
