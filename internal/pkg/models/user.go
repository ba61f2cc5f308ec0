package models

import (
	"time"
)

// User represents an authenticated end user and their assigned role
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	IsActive  bool      `json:"is_active" db:"is_active"`
}

// Identity is the result of verifying a bearer token
type Identity struct {
	Subject string `json:"uid"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// AuthResponse is returned by the login and verify endpoints
type AuthResponse struct {
	Success bool   `json:"success"`
	UID     string `json:"uid"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}
