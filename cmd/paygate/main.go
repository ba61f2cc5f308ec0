package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iskolardev/paygate/internal/pkg/config"
	"github.com/iskolardev/paygate/internal/pkg/database"
	"github.com/iskolardev/paygate/internal/pkg/health"
	"github.com/iskolardev/paygate/internal/pkg/logger"
	"github.com/iskolardev/paygate/internal/pkg/middleware"
	natspkg "github.com/iskolardev/paygate/internal/pkg/nats"
	"github.com/iskolardev/paygate/internal/pkg/server"
	authHandler "github.com/iskolardev/paygate/services/auth/handler"
	authHTTP "github.com/iskolardev/paygate/services/auth/handler/http"
	authRepo "github.com/iskolardev/paygate/services/auth/repository"
	authUsecase "github.com/iskolardev/paygate/services/auth/usecase"
	"github.com/iskolardev/paygate/services/payments/gateway"
	paymentHandler "github.com/iskolardev/paygate/services/payments/handler"
	paymentHTTP "github.com/iskolardev/paygate/services/payments/handler/http"
	paymentRepo "github.com/iskolardev/paygate/services/payments/repository"
	paymentUsecase "github.com/iskolardev/paygate/services/payments/usecase"
)

func main() {
	appName := "paygate"
	configPath := os.Getenv("CONFIG_PATH")
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}

	// Payment service wiring
	paymongoGW := gateway.NewPayMongoGW(configs.PayMongo)
	txRepo := paymentRepo.NewPaymentRepo(postgresClient.GetDB(), redisClient)
	paymentUC := paymentUsecase.NewPaymentUC(configs, paymongoGW, txRepo, natsClient)
	payHandler := paymentHandler.NewHandler(
		paymentHTTP.NewPaymentHandler(paymentUC),
		paymentHTTP.NewWebhookHandler(paymentUC, configs.PayMongo.WebhookSecret),
		configs,
	)

	// Auth service wiring
	userRepo := authRepo.NewAuthRepo(postgresClient.GetDB(), redisClient)
	authUC := authUsecase.NewAuthUC(configs, userRepo)
	aHandler := authHandler.NewHandler(authHTTP.NewAuthHandler(authUC))

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	// Add middlewares
	e.Use(echomw.CORS())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.MaintenanceMiddleware(configs.Maintenance))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName)

	// Register service routes
	payHandler.RegisterRoutes(e)
	aHandler.RegisterRoutes(e)

	// Cleanup for dependencies that outlive the HTTP server
	shutdownManager := server.NewShutdownManager(zapLogger)
	shutdownManager.Register(func(ctx context.Context) error {
		natsClient.Close()
		return nil
	})
	shutdownManager.Register(func(ctx context.Context) error {
		return redisClient.Close()
	})
	shutdownManager.Register(func(ctx context.Context) error {
		return postgresClient.Close()
	})

	shutdownTimeout := time.Duration(configs.Server.ShutdownTimeout) * time.Second
	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port, shutdownTimeout)

	zapLogger.Info("Starting server",
		zap.String("app", appName),
		zap.Int("port", configs.Server.Port),
	)

	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server terminated abnormally",
			zap.String("app", appName),
			zap.Error(err),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownManager.Shutdown(ctx); err != nil {
		zapLogger.Error("Cleanup finished with errors", zap.Error(err))
	}
}
