package models

import "time"

// User represents an account entity used for authentication and ownership
// of student records. Sensitive fields must never be exposed outside
// trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the account.
	UserID int64 `json:"id"`

	// Username is the unique login identifier.
	Username string `json:"username" validate:"required"`

	// Email is the unique contact address of the account.
	Email string `json:"email" validate:"required,email"`

	// PasswordHash stores the bcrypt hash of the account password.
	// Never serialized to clients and never logged.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// RegisterRequest is the payload of POST /api/users/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the payload of POST /api/users/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdateRequest is the payload of PUT /api/users/profile.
type ProfileUpdateRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
}

// PasswordChangeRequest is the payload of PUT /api/users/password.
// The current password must be confirmed before rotation.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}
