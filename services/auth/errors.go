package auth

import "errors"

var (
	// ErrInvalidToken indicates the bearer token failed validation
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUserNotFound indicates the token subject has no user record
	ErrUserNotFound = errors.New("user not found")

	// ErrRoleMismatch indicates the stored role differs from the role
	// the caller claimed
	ErrRoleMismatch = errors.New("user role does not match requested role")
)
