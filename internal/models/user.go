package models

import "time"

// UserRole represents profile roles in the system
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"
	UserRoleStaff    UserRole = "staff"
)

// CanManageStore reports whether the role grants access to the back-office.
// Every admin gate in the application goes through this single check.
func (r UserRole) CanManageStore() bool {
	return r == UserRoleAdmin || r == UserRoleStaff
}

// IsValid checks if the role is a known role
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleCustomer, UserRoleAdmin, UserRoleStaff:
		return true
	}
	return false
}

// User represents a storefront profile, shared with the auth identity
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"fullName" db:"full_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// IsAdmin reports whether the profile may use back-office operations
func (u *User) IsAdmin() bool {
	return u.Role.CanManageStore()
}

// HasPassword reports whether the profile carries a local credential.
// Federated identities are created without one.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// UserRegistration represents sign-up data
type UserRegistration struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// UserLogin represents sign-in data
type UserLogin struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,max=128"`
}
