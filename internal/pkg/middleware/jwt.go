package middleware

import (
	"fmt"
	"strings"

	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/iskolardev/paygate/internal/utils"
	"github.com/labstack/echo/v4"

	jwtpkg "github.com/iskolardev/paygate/internal/pkg/jwt"
)

// JWTAuthMiddleware creates a middleware for JWT authentication.
// On success it stores uid, email and role in the echo context under
// "user_id", "user_email" and "user_role".
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Get the Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			// Check if the Authorization header has the correct format
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			// Extract the token
			tokenString := parts[1]

			// Validate the token using our JWT package
			claims, err := jwtpkg.ValidateToken(tokenString, config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			// Extract user ID and role from claims
			uid, ok := (*claims)["uid"]
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid token: missing uid claim")
			}

			role, ok := (*claims)["role"]
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid token: missing role claim")
			}

			// Set the user identity in the context
			c.Set("user_id", fmt.Sprintf("%v", uid))
			c.Set("user_role", fmt.Sprintf("%v", role))
			if email, ok := (*claims)["email"]; ok {
				c.Set("user_email", fmt.Sprintf("%v", email))
			}

			return next(c)
		}
	}
}

// BearerToken extracts the raw bearer token from a request, returning
// an empty string when the header is absent or malformed
func BearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
