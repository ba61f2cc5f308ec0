package usecase

import (
	"context"
	"fmt"

	jwtpkg "github.com/iskolardev/paygate/internal/pkg/jwt"
	"github.com/iskolardev/paygate/internal/pkg/logger"
	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/iskolardev/paygate/services/auth"
)

// AuthUC implements the auth.AuthUseCase interface
type AuthUC struct {
	cfg  *models.Config
	repo auth.AuthRepo
}

// NewAuthUC creates a new auth use case
func NewAuthUC(cfg *models.Config, repo auth.AuthRepo) auth.AuthUseCase {
	return &AuthUC{
		cfg:  cfg,
		repo: repo,
	}
}

// Verify validates a bearer token and resolves the caller's identity.
// The role always comes from the user record, never from the token, so
// role changes do not require re-issuing tokens.
func (uc *AuthUC) Verify(ctx context.Context, token string, expectedRole string) (*models.Identity, error) {
	claims, err := jwtpkg.ValidateToken(token, uc.cfg.JWT.Secret)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	uid, ok := (*claims)["uid"].(string)
	if !ok || uid == "" {
		return nil, auth.ErrInvalidToken
	}

	user, err := uc.repo.GetUser(ctx, uid)
	if err != nil {
		if err == auth.ErrUserNotFound {
			logger.Warn("Token subject has no user record",
				logger.String("user_id", uid))
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if expectedRole != "" && user.Role != expectedRole {
		logger.Warn("Role mismatch on verification",
			logger.String("user_id", uid),
			logger.String("stored_role", user.Role),
			logger.String("requested_role", expectedRole))
		return nil, auth.ErrRoleMismatch
	}

	return &models.Identity{
		Subject: user.ID,
		Email:   user.Email,
		Role:    user.Role,
	}, nil
}
