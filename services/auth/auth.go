package auth

import (
	"context"

	"github.com/iskolardev/paygate/internal/pkg/models"
)

// AuthRepo defines the interface for user identity storage
type AuthRepo interface {
	// GetUser retrieves a user by ID, serving from cache when possible
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

// AuthUseCase defines the interface for token verification.
// It is the single place bearer tokens are turned into identities;
// handlers and middleware consume it rather than re-deriving claims.
type AuthUseCase interface {
	// Verify validates a bearer token and resolves the caller's role.
	// A non-empty expectedRole additionally requires the stored role to
	// match.
	Verify(ctx context.Context, token string, expectedRole string) (*models.Identity, error)
}
