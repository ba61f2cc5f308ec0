package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/iskolardev/paygate/internal/pkg/logger"
	"github.com/labstack/echo/v4"
)

// PanicRecoveryConfig holds configuration for panic recovery middleware
type PanicRecoveryConfig struct {
	StackSize int
	Logger    *logger.ZapLogger
}

// DefaultPanicRecoveryConfig returns default configuration for panic recovery
func DefaultPanicRecoveryConfig() PanicRecoveryConfig {
	return PanicRecoveryConfig{
		StackSize: 4 << 10, // 4 KB
		Logger:    nil,
	}
}

// PanicRecoveryMiddleware creates a middleware that recovers from panics
// and logs them with stack traces
func PanicRecoveryMiddleware(config PanicRecoveryConfig) echo.MiddlewareFunc {
	if config.Logger == nil {
		panic("PanicRecoveryMiddleware requires a logger")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					handlePanic(c, r, config)
				}
			}()

			return next(c)
		}
	}
}

// PanicRecoveryWithZapMiddleware creates panic recovery middleware with Zap logger
func PanicRecoveryWithZapMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	config := DefaultPanicRecoveryConfig()
	config.Logger = zapLogger
	return PanicRecoveryMiddleware(config)
}

// handlePanic handles the panic recovery, logging, and response
func handlePanic(c echo.Context, r interface{}, config PanicRecoveryConfig) {
	stack := debug.Stack()

	// Get user ID if available
	userID := "anonymous"
	if uid := c.Get("user_id"); uid != nil {
		userID = fmt.Sprintf("%v", uid)
	}

	requestID := c.Response().Header().Get("X-Request-ID")
	if requestID == "" {
		requestID = c.Request().Header.Get("X-Request-ID")
	}

	config.Logger.Error("Panic recovered during request processing",
		logger.Any("panic_value", r),
		logger.String("panic_type", fmt.Sprintf("%T", r)),
		logger.String("stack_trace", string(stack)),
		logger.String("method", c.Request().Method),
		logger.String("path", c.Request().URL.Path),
		logger.String("client_ip", c.RealIP()),
		logger.String("user_id", userID),
		logger.String("request_id", requestID),
	)

	// Respond with a generic error; the panic details stay in the logs
	if !c.Response().Committed {
		_ = c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Internal server error",
		})
	}
}
