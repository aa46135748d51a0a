package handlers

import (
	"net/http"

	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommunityHandler handles HTTP requests related to communities
type CommunityHandler struct {
	communityRepository    repositories.CommunityRepository
	invitationRepository   repositories.InvitationRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(
	communityRepo repositories.CommunityRepository,
	invitationRepo repositories.InvitationRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
) *CommunityHandler {
	return &CommunityHandler{
		communityRepository:    communityRepo,
		invitationRepository:   invitationRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterCommunityRoutes registers community-related routes
func (h *CommunityHandler) RegisterCommunityRoutes(g *echo.Group) {
	g.POST("/communities", h.CreateCommunity)
	g.GET("/communities/:id", h.GetCommunity)
	g.POST("/communities/:id/join", h.JoinCommunity)
	g.GET("/communities/:id/members", h.ListMembers)
	g.PUT("/communities/:id/members/:memberId/role", h.UpdateMemberRole)
	g.DELETE("/communities/:id/members/:memberId", h.RemoveMember)
	g.POST("/communities/:id/invitations", h.InviteMember)
}

// CreateCommunity creates a community with the caller as its first admin.
func (h *CommunityHandler) CreateCommunity(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	var req models.CreateCommunityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	community, err := h.communityRepository.CreateCommunity(currentUserID, req.Name, req.Visibility)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, community)
}

func (h *CommunityHandler) GetCommunity(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	community, err := h.communityRepository.GetCommunityByID(id)
	if err != nil {
		return err
	}
	admins, _ := h.communityRepository.CountAdmins(id)
	return c.JSON(http.StatusOK, echo.Map{"community": community, "admin_count": admins})
}

// JoinCommunity joins a PUBLIC community directly or files a join request
// for a PRIVATE one.
func (h *CommunityHandler) JoinCommunity(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	communityID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	outcome, err := h.communityRepository.JoinCommunity(currentUserID, communityID)
	if err != nil {
		return err
	}
	status := http.StatusCreated
	if outcome == repositories.JoinOutcomeRequested {
		status = http.StatusAccepted
	}
	return c.JSON(status, echo.Map{"success": true, "outcome": string(outcome)})
}

func (h *CommunityHandler) ListMembers(c echo.Context) error {
	communityID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.communityRepository.GetCommunityByID(communityID); err != nil {
		return err
	}
	p := pageParams(c, 20, 100)
	members, page, err := h.communityRepository.ListMembers(communityID, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"members":     members,
		"nextCursor":  page.NextCursor,
		"hasNextPage": page.HasNextPage,
	})
}

// UpdateMemberRole changes a member's role; admin only, last admin protected.
func (h *CommunityHandler) UpdateMemberRole(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	communityID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	memberID, err := paramID(c, "memberId")
	if err != nil {
		return err
	}
	var req models.UpdateMemberRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	member, err := h.communityRepository.UpdateMemberRole(currentUserID, communityID, memberID, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// RemoveMember removes a member; creator always protected.
func (h *CommunityHandler) RemoveMember(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	communityID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	memberID, err := paramID(c, "memberId")
	if err != nil {
		return err
	}
	if err := h.communityRepository.RemoveMember(currentUserID, communityID, memberID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// InviteMember invites a user to the community and notifies them.
func (h *CommunityHandler) InviteMember(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	communityID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.InviteMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if _, err := h.userRepository.GetUserByID(req.InviteeID); err != nil {
		return err
	}
	if _, err := h.communityRepository.GetCommunityByID(communityID); err != nil {
		return err
	}

	invitation, err := h.invitationRepository.CreateInvitation(communityID, currentUserID, req.InviteeID)
	if err != nil {
		return err
	}

	if h.notificationRepository != nil {
		actor, _ := h.userRepository.GetUserByID(currentUserID)
		if actor != nil {
			notif := &models.Notification{
				Type:        "community_invite",
				ActorID:     currentUserID,
				RecipientID: req.InviteeID,
				TargetID:    communityID,
				TargetType:  "community",
				Message:     actor.Name + " invited you to a community",
			}
			h.notificationRepository.CreateNotification(notif)
		}
	}

	return c.JSON(http.StatusCreated, invitation)
}
