package handlers

import (
	"net/http"

	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles HTTP requests related to post reactions
type ReactionHandler struct {
	reactionRepository     repositories.ReactionRepository
	postRepository         repositories.PostRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(
	reactionRepo repositories.ReactionRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
) *ReactionHandler {
	return &ReactionHandler{
		reactionRepository:     reactionRepo,
		postRepository:         postRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:id/reactions", h.ToggleReaction)
	g.GET("/posts/:id/reactions", h.GetReactions)
}

// ToggleReaction adds the reaction if absent and removes it if present.
func (h *ReactionHandler) ToggleReaction(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.ToggleReactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return err
	}

	result, err := h.reactionRepository.ToggleReaction(postID, currentUserID, req.Type)
	if err != nil {
		return err
	}

	if result == repositories.ToggleAdded && post.AuthorID != currentUserID && h.notificationRepository != nil {
		actor, _ := h.userRepository.GetUserByID(currentUserID)
		if actor != nil {
			notif := &models.Notification{
				Type:        "reaction",
				ActorID:     currentUserID,
				RecipientID: post.AuthorID,
				TargetID:    postID,
				TargetType:  "post",
				Message:     actor.Name + " reacted to your post",
			}
			h.notificationRepository.CreateNotification(notif)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "result": string(result)})
}

// GetReactions lists reactions with user summaries.
func (h *ReactionHandler) GetReactions(c echo.Context) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		return err
	}
	reactions, err := h.reactionRepository.GetReactionsByPostID(postID)
	if err != nil {
		return err
	}
	counts, err := h.reactionRepository.GetReactionCounts(postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"reactions": reactions, "counts": counts})
}
