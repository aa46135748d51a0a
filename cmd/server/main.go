package main

import (
	"log"

	"github.com/alexedwards/scs/v2"
	"github.com/hollowave/hollowave-backend/internal/router"
	"github.com/hollowave/hollowave-backend/pkg/config"
	"github.com/hollowave/hollowave-backend/pkg/logger"
	"github.com/hollowave/hollowave-backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLog.Sync()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		zapLog.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	// Session manager issues the per-request principal
	sessions := scs.New()
	sessions.Lifetime = cfg.SessionLifetime
	sessions.Cookie.Secure = cfg.SessionSecure
	sessions.Cookie.HttpOnly = true

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e, sessions, zapLog)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, sessions, zapLog); err != nil {
		zapLog.Fatal("failed to set up routes", zap.Error(err))
	}

	// Start server
	zapLog.Info("starting server", zap.String("port", cfg.Port))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
