package handlers

import (
	"net/http"

	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// InvitationHandler handles the invitee-facing invitation surface
type InvitationHandler struct {
	invitationRepository repositories.InvitationRepository
}

// NewInvitationHandler creates a new InvitationHandler
func NewInvitationHandler(invitationRepo repositories.InvitationRepository) *InvitationHandler {
	return &InvitationHandler{invitationRepository: invitationRepo}
}

// RegisterInvitationRoutes registers invitation routes
func (h *InvitationHandler) RegisterInvitationRoutes(g *echo.Group) {
	g.GET("/invitations", h.ListInvitations)
	g.PUT("/invitations/:id", h.RespondInvitation)
}

// ListInvitations pages the current user's invitations, optionally filtered
// by status.
func (h *InvitationHandler) ListInvitations(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	status := c.QueryParam("status")
	switch status {
	case "", models.InvitationPending, models.InvitationAccepted, models.InvitationDeclined:
	default:
		return apperrors.Validation("invalid status filter")
	}
	p := pageParams(c, 20, 100)
	invitations, page, err := h.invitationRepository.ListInvitations(currentUserID, status, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"invitations": invitations,
		"nextCursor":  page.NextCursor,
		"hasNextPage": page.HasNextPage,
	})
}

// RespondInvitation accepts or declines; accepting creates the membership.
func (h *InvitationHandler) RespondInvitation(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	invitationID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.RespondInvitationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	invitation, err := h.invitationRepository.RespondInvitation(currentUserID, invitationID, req.Action == "accept")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invitation)
}
