package handlers

import (
	"net/http"

	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles HTTP requests related to notifications
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.PUT("/notifications/read", h.MarkAllRead)
}

func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	p := pageParams(c, 20, 50)
	notifications, page, err := h.notificationRepository.GetByRecipientID(currentUserID, p)
	if err != nil {
		return err
	}
	unread, _ := h.notificationRepository.GetUnreadCount(currentUserID)
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"unread_count":  unread,
		"nextCursor":    page.NextCursor,
		"hasNextPage":   page.HasNextPage,
	})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.notificationRepository.MarkAllAsRead(currentUserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
