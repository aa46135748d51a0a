package handlers

import (
	"net/http"

	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo, followRepository: followRepo}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/user/profile", h.GetProfile)
	g.PUT("/user/profile", h.UpdateProfile)
	g.POST("/user/onboarding", h.CompleteOnboarding)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := principal(c)
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := principal(c)
	if err != nil {
		return err
	}
	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return err
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Image != "" {
		user.Image = req.Image
	}
	if err := h.userRepository.UpdateUser(user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// CompleteOnboarding finishes profile setup after first sign-in.
func (h *UserHandler) CompleteOnboarding(c echo.Context) error {
	userID, err := principal(c)
	if err != nil {
		return err
	}
	var req models.OnboardingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.userRepository.CompleteOnboarding(userID, req.Name, req.Username, req.Image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		return err
	}

	followers, _ := h.followRepository.GetFollowersCount(id)
	following, _ := h.followRepository.GetFollowingCount(id)

	return c.JSON(http.StatusOK, echo.Map{
		"user":            user.ToCompact(),
		"followers_count": followers,
		"following_count": following,
	})
}

func (h *UserHandler) GetFollowers(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	p := pageParams(c, 20, 100)
	users, page, err := h.followRepository.GetFollowers(id, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users":       users,
		"nextCursor":  page.NextCursor,
		"hasNextPage": page.HasNextPage,
	})
}

func (h *UserHandler) GetFollowing(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	p := pageParams(c, 20, 100)
	users, page, err := h.followRepository.GetFollowing(id, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users":       users,
		"nextCursor":  page.NextCursor,
		"hasNextPage": page.HasNextPage,
	})
}
