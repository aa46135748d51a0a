package handlers

import (
	"net/http"

	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/user/follow", h.FollowAction)
}

// FollowAction follows or unfollows the target user depending on the action
// field. Unfollowing an absent edge is a no-op.
func (h *FollowHandler) FollowAction(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}

	var req models.FollowActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if currentUserID == req.TargetUserID {
		return apperrors.Validation("cannot follow yourself")
	}

	// Target must exist for either action
	if _, err := h.userRepository.GetUserByID(req.TargetUserID); err != nil {
		return err
	}

	switch req.Action {
	case "follow":
		if err := h.followRepository.CreateFollow(currentUserID, req.TargetUserID); err != nil {
			return err
		}
		if h.notificationRepository != nil {
			actor, _ := h.userRepository.GetUserByID(currentUserID)
			if actor != nil {
				notif := &models.Notification{
					Type:        "follow",
					ActorID:     currentUserID,
					RecipientID: req.TargetUserID,
					TargetID:    currentUserID,
					TargetType:  "user",
					Message:     actor.Name + " started following you",
				}
				h.notificationRepository.CreateNotification(notif)
			}
		}
	case "unfollow":
		if err := h.followRepository.DeleteFollow(currentUserID, req.TargetUserID); err != nil {
			return err
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "action": req.Action})
}
