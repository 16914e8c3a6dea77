package domain

import (
	"context"
	"time"
)

// User represents an account of the web application
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsStaff      bool
	IsSuperuser  bool
	IsActive     bool
	DateJoined   time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new active User instance
func NewUser(username, email, firstName, lastName string) *User {
	now := time.Now()
	return &User{
		Username:   username,
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		IsActive:   true,
		DateJoined: now,
		UpdatedAt:  now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.Username == "" {
		return NewValidationError("username is required")
	}
	if u.Email == "" {
		return NewValidationError("email is required")
	}
	if u.PasswordHash == "" {
		return NewValidationError("password hash is required")
	}
	if u.IsSuperuser && !u.IsStaff {
		return NewValidationError("superuser must also be staff")
	}
	return nil
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	// GetUserByUsername returns nil, nil when no user has that username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
}

// PasswordHasher turns a plaintext password into its stored encoding.
type PasswordHasher interface {
	Hash(password string) (string, error)
}
