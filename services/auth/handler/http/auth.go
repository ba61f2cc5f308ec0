package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iskolardev/paygate/internal/pkg/logger"
	"github.com/iskolardev/paygate/internal/pkg/middleware"
	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/iskolardev/paygate/internal/utils"
	"github.com/iskolardev/paygate/services/auth"
)

// verifyRequest optionally names the role the caller claims to hold
type verifyRequest struct {
	Role string `json:"role"`
}

// AuthHandler handles HTTP requests for token verification
type AuthHandler struct {
	authUC auth.AuthUseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
	}
}

// Login verifies the bearer token and the claimed role, returning the
// caller's stored identity
func (h *AuthHandler) Login(c echo.Context) error {
	return h.verify(c)
}

// Verify verifies the bearer token, returning the caller's stored identity
func (h *AuthHandler) Verify(c echo.Context) error {
	return h.verify(c)
}

func (h *AuthHandler) verify(c echo.Context) error {
	token := middleware.BearerToken(c)
	if token == "" {
		return utils.UnauthorizedResponse(c, "Authorization header is required")
	}

	var req verifyRequest
	// Body is optional; only a present, well-formed role is enforced
	_ = c.Bind(&req)

	identity, err := h.authUC.Verify(c.Request().Context(), token, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken):
			return utils.UnauthorizedResponse(c, "Invalid or expired token")
		case errors.Is(err, auth.ErrUserNotFound):
			return utils.NotFoundResponse(c, "User not found")
		case errors.Is(err, auth.ErrRoleMismatch):
			return utils.ForbiddenResponse(c, "Role does not match")
		default:
			logger.ErrorLog("Token verification failed", logger.Err(err))
			return utils.InternalServerErrorResponse(c, "Verification failed")
		}
	}

	return c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		UID:     identity.Subject,
		Email:   identity.Email,
		Role:    identity.Role,
	})
}
