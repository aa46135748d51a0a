package handlers

import (
	"net/http"

	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PreferencesHandler serves the opaque user preference bag. PUT merges any
// keys shallowly; PATCH is restricted to the theme key.
type PreferencesHandler struct {
	userRepository repositories.UserRepository
}

// NewPreferencesHandler creates a new PreferencesHandler
func NewPreferencesHandler(userRepo repositories.UserRepository) *PreferencesHandler {
	return &PreferencesHandler{userRepository: userRepo}
}

// RegisterPreferencesRoutes registers preference routes
func (h *PreferencesHandler) RegisterPreferencesRoutes(g *echo.Group) {
	g.GET("/user/preferences", h.GetPreferences)
	g.PUT("/user/preferences", h.UpdatePreferences)
	g.PATCH("/user/preferences", h.UpdateTheme)
}

func (h *PreferencesHandler) GetPreferences(c echo.Context) error {
	userID, err := principal(c)
	if err != nil {
		return err
	}
	prefs, err := h.userRepository.GetPreferences(userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences shallow-merges the submitted bag. The theme key, when
// present, is validated; unknown keys pass through opaquely.
func (h *PreferencesHandler) UpdatePreferences(c echo.Context) error {
	userID, err := principal(c)
	if err != nil {
		return err
	}
	var patch map[string]any
	if err := c.Bind(&patch); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if theme, ok := patch["theme"]; ok {
		s, isString := theme.(string)
		if !isString || (s != "light" && s != "dark" && s != "system") {
			return apperrors.Validation("theme must be one of light, dark, system")
		}
	}
	prefs, err := h.userRepository.MergePreferences(userID, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

// UpdateTheme handles the restricted PATCH body.
func (h *PreferencesHandler) UpdateTheme(c echo.Context) error {
	userID, err := principal(c)
	if err != nil {
		return err
	}
	var req models.UpdateThemeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	prefs, err := h.userRepository.MergePreferences(userID, map[string]any{"theme": req.Theme})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}
