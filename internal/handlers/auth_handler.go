package handlers

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/middleware"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler establishes and tears down sessions.
type AuthHandler struct {
	userRepository repositories.UserRepository
	sessions       *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, sessions *scs.SessionManager) *AuthHandler {
	return &AuthHandler{userRepository: userRepo, sessions: sessions}
}

// RegisterAuthRoutes registers authentication routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
}

// Signup creates a user and starts a session.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return err
	}

	if err := h.sessions.RenewToken(c.Request().Context()); err != nil {
		return err
	}
	h.sessions.Put(c.Request().Context(), middleware.SessionUserKey, int(user.ID))

	return c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and starts a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		return apperrors.New(http.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return apperrors.New(http.StatusUnauthorized, "invalid credentials")
	}

	if err := h.sessions.RenewToken(c.Request().Context()); err != nil {
		return err
	}
	h.sessions.Put(c.Request().Context(), middleware.SessionUserKey, int(user.ID))

	return c.JSON(http.StatusOK, user)
}

// Logout destroys the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Destroy(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
