package router

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/handlers"
	"github.com/hollowave/hollowave-backend/internal/middleware"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, sessions *scs.SessionManager, log *zap.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(echo.WrapMiddleware(sessions.LoadAndSave))
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
}

// NewHTTPErrorHandler maps the error taxonomy onto HTTP statuses with a uniform
// {"error": msg} body. Unexpected errors are logged and surfaced as 500
// without detail.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		message := "internal server error"

		if appErr, ok := apperrors.As(err); ok {
			status = appErr.StatusCode
			message = appErr.Message
		} else if httpErr, ok := err.(*echo.HTTPError); ok {
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		} else {
			log.Error("unhandled error", zap.Error(err), zap.String("uri", c.Request().RequestURI))
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, echo.Map{"error": message})
	}
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, sessions *scs.SessionManager, log *zap.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.MediaAttachment{},
		&models.Reaction{},
		&models.Bookmark{},
		&models.Follow{},
		&models.Connection{},
		&models.Community{},
		&models.CommunityMember{},
		&models.JoinRequest{},
		&models.CommunityInvitation{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	reactionRepo := repositories.NewPostgresReactionRepository(db)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	connectionRepo := repositories.NewPostgresConnectionRepository(db)
	communityRepo := repositories.NewPostgresCommunityRepository(db)
	invitationRepo := repositories.NewPostgresInvitationRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, sessions)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require a session principal) ---
	api := e.Group("/api")
	api.Use(middleware.SessionAuthMiddleware(sessions))

	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	userHandler.RegisterUserRoutes(api)

	preferencesHandler := handlers.NewPreferencesHandler(userRepo)
	preferencesHandler.RegisterPreferencesRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, userRepo, notificationRepo)
	postHandler.RegisterPostRoutes(api)

	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, bookmarkRepo, reactionRepo)
	feedHandler.RegisterFeedRoutes(api)

	reactionHandler := handlers.NewReactionHandler(reactionRepo, postRepo, userRepo, notificationRepo)
	reactionHandler.RegisterReactionRoutes(api)

	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkRepo, postRepo)
	bookmarkHandler.RegisterBookmarkRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo)
	followHandler.RegisterFollowRoutes(api)

	connectionHandler := handlers.NewConnectionHandler(connectionRepo, userRepo, notificationRepo)
	connectionHandler.RegisterConnectionRoutes(api)

	communityHandler := handlers.NewCommunityHandler(communityRepo, invitationRepo, userRepo, notificationRepo)
	communityHandler.RegisterCommunityRoutes(api)

	invitationHandler := handlers.NewInvitationHandler(invitationRepo)
	invitationHandler.RegisterInvitationRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Info("all routes configured")
	return nil
}
