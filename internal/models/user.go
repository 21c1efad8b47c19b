package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered freelancer account
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Address      *string    `json:"address"`
	CompanyID    *uuid.UUID `json:"company_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

// RegisterRequest represents the signup payload
type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Address  *string `json:"address"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	Address *string `json:"address"`
}

// SessionResponse wraps the current user for auth endpoints
type SessionResponse struct {
	User *User `json:"user"`
}
