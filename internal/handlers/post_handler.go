package handlers

import (
	"net/http"

	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/policy"
	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts and threads
type PostHandler struct {
	postRepository         repositories.PostRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *PostHandler {
	return &PostHandler{
		postRepository:         postRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.GET("/posts/:id/replies", h.GetReplies)
	g.GET("/posts/:id/thread", h.GetThread)
}

// CreatePost creates a post or, when parent_id is set, a reply.
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postRepository.CreatePost(currentUserID, &req)
	if err != nil {
		return err
	}

	// Replying notifies the parent author
	if req.ParentID != nil && h.notificationRepository != nil {
		if parent, err := h.postRepository.GetPostByID(*req.ParentID); err == nil && parent.AuthorID != currentUserID {
			actor, _ := h.userRepository.GetUserByID(currentUserID)
			if actor != nil {
				notif := &models.Notification{
					Type:        "reply",
					ActorID:     currentUserID,
					RecipientID: parent.AuthorID,
					TargetID:    post.ID,
					TargetType:  "post",
					Message:     actor.Name + " replied to your post",
				}
				h.notificationRepository.CreateNotification(notif)
			}
		}
	}

	return c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost edits a post's content; author only.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		return err
	}
	if err := policy.CanEditPost(currentUserID, post); err != nil {
		return err
	}
	post.Content = req.Content
	if err := h.postRepository.UpdatePost(post); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// GetReplies lists direct replies, newest first.
func (h *PostHandler) GetReplies(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.postRepository.GetPostByID(id); err != nil {
		return err
	}
	p := pageParams(c, 20, 100)
	replies, page, err := h.postRepository.GetReplies(id, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"replies":     replies,
		"nextCursor":  page.NextCursor,
		"hasNextPage": page.HasNextPage,
	})
}

// GetThread returns the root post with its replies oldest first.
func (h *PostHandler) GetThread(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	root, replies, err := h.postRepository.GetThread(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"post":    root,
		"replies": replies,
	})
}
