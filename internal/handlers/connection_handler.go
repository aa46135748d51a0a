package handlers

import (
	"net/http"

	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ConnectionHandler handles HTTP requests related to connections
type ConnectionHandler struct {
	connectionRepository   repositories.ConnectionRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(
	connRepo repositories.ConnectionRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
) *ConnectionHandler {
	return &ConnectionHandler{
		connectionRepository:   connRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterConnectionRoutes registers connection-related routes
func (h *ConnectionHandler) RegisterConnectionRoutes(g *echo.Group) {
	g.POST("/user/connections", h.RequestConnection)
	g.PUT("/user/connections/:id", h.RespondConnection)
	g.GET("/user/connections", h.GetConnections)
	g.GET("/user/connections/status/:userId", h.GetConnectionStatus)
}

// RequestConnection creates a PENDING request and notifies the target.
func (h *ConnectionHandler) RequestConnection(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	var req models.RequestConnectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByID(req.TargetUserID); err != nil {
		return err
	}

	conn, err := h.connectionRepository.RequestConnection(currentUserID, req.TargetUserID)
	if err != nil {
		return err
	}

	if h.notificationRepository != nil {
		actor, _ := h.userRepository.GetUserByID(currentUserID)
		if actor != nil {
			notif := &models.Notification{
				Type:        "connection_request",
				ActorID:     currentUserID,
				RecipientID: req.TargetUserID,
				TargetID:    conn.ID,
				TargetType:  "connection",
				Message:     actor.Name + " sent you a connection request",
			}
			h.notificationRepository.CreateNotification(notif)
		}
	}

	return c.JSON(http.StatusCreated, conn)
}

// RespondConnection accepts or rejects a PENDING request; target side only.
func (h *ConnectionHandler) RespondConnection(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	connectionID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.RespondConnectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	accept := req.Action == "accept"
	conn, err := h.connectionRepository.RespondConnection(currentUserID, connectionID, accept)
	if err != nil {
		return err
	}

	if accept && h.notificationRepository != nil {
		actor, _ := h.userRepository.GetUserByID(currentUserID)
		if actor != nil {
			notif := &models.Notification{
				Type:        "connection_accepted",
				ActorID:     currentUserID,
				RecipientID: conn.RequesterID,
				TargetID:    conn.ID,
				TargetType:  "connection",
				Message:     actor.Name + " accepted your connection request",
			}
			h.notificationRepository.CreateNotification(notif)
		}
	}

	return c.JSON(http.StatusOK, conn)
}

func (h *ConnectionHandler) GetConnections(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	contacts, err := h.connectionRepository.GetAcceptedConnections(currentUserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"connections": contacts})
}

// GetConnectionStatus summarizes the relationship between the current user
// and another user.
func (h *ConnectionHandler) GetConnectionStatus(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	otherID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	if currentUserID == otherID {
		return c.JSON(http.StatusOK, models.ConnectionStatusResponse{Status: "self"})
	}
	if _, err := h.userRepository.GetUserByID(otherID); err != nil {
		return err
	}

	conn, err := h.connectionRepository.GetConnectionForPair(currentUserID, otherID)
	if err != nil {
		return err
	}
	if conn == nil {
		return c.JSON(http.StatusOK, models.ConnectionStatusResponse{
			Status:     "not_connected",
			CanConnect: true,
		})
	}

	isRequester := conn.RequesterID == currentUserID
	resp := models.ConnectionStatusResponse{
		ConnectionID: &conn.ID,
		IsRequester:  &isRequester,
	}
	switch conn.Status {
	case models.ConnectionPending:
		if isRequester {
			resp.Status = "request_sent"
		} else {
			resp.Status = "request_received"
		}
	case models.ConnectionAccepted:
		resp.Status = "connected"
	case models.ConnectionRejected:
		resp.Status = "rejected"
	case models.ConnectionBlocked:
		resp.Status = "blocked"
	default:
		resp.Status = "unknown"
	}
	return c.JSON(http.StatusOK, resp)
}
