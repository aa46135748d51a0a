package repositories

import (
	"errors"

	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/pagination"
	"gorm.io/gorm"
)

// InvitationRepository defines the interface for community invitation operations
type InvitationRepository interface {
	CreateInvitation(communityID, inviterID, inviteeID uint) (*models.CommunityInvitation, error)
	RespondInvitation(responderID, invitationID uint, accept bool) (*models.CommunityInvitation, error)
	ListInvitations(inviteeID uint, status string, p pagination.Params) ([]models.CommunityInvitation, pagination.Page, error)
}

// PostgresInvitationRepository implements InvitationRepository for the relational store
type PostgresInvitationRepository struct {
	db *gorm.DB
}

// NewPostgresInvitationRepository creates a new PostgresInvitationRepository
func NewPostgresInvitationRepository(db *gorm.DB) *PostgresInvitationRepository {
	return &PostgresInvitationRepository{db: db}
}

// CreateInvitation records a PENDING invitation. The inviter must be a
// member; an existing membership or pending invitation is a conflict.
func (r *PostgresInvitationRepository) CreateInvitation(communityID, inviterID, inviteeID uint) (*models.CommunityInvitation, error) {
	invitation := &models.CommunityInvitation{
		CommunityID: communityID,
		InviterID:   inviterID,
		InviteeID:   inviteeID,
		Status:      models.InvitationPending,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		inviter, err := memberInTx(tx, communityID, inviterID)
		if err != nil {
			return err
		}
		if inviter == nil {
			return apperrors.Forbidden(apperrors.ReasonInsufficientRole, "only members may invite")
		}
		var memberCount int64
		if err := tx.Model(&models.CommunityMember{}).
			Where("community_id = ? AND user_id = ?", communityID, inviteeID).
			Count(&memberCount).Error; err != nil {
			return err
		}
		if memberCount > 0 {
			return apperrors.Conflict(apperrors.ReasonDuplicateMember, "user is already a member")
		}
		var pendingCount int64
		if err := tx.Model(&models.CommunityInvitation{}).
			Where("community_id = ? AND invitee_id = ? AND status = ?",
				communityID, inviteeID, models.InvitationPending).
			Count(&pendingCount).Error; err != nil {
			return err
		}
		if pendingCount > 0 {
			return apperrors.Conflict(apperrors.ReasonDuplicateInvitation, "an invitation is already pending")
		}
		return tx.Create(invitation).Error
	})
	if err != nil {
		return nil, err
	}
	return invitation, nil
}

// RespondInvitation transitions a PENDING invitation; accepting also creates
// the membership in the same transaction.
func (r *PostgresInvitationRepository) RespondInvitation(responderID, invitationID uint, accept bool) (*models.CommunityInvitation, error) {
	var invitation models.CommunityInvitation
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invitation, invitationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("invitation not found")
			}
			return err
		}
		if invitation.InviteeID != responderID {
			return apperrors.Forbidden("", "only the invitee may respond to this invitation")
		}
		if invitation.Status != models.InvitationPending {
			return apperrors.Conflict("", "invitation is no longer pending")
		}
		if !accept {
			invitation.Status = models.InvitationDeclined
			return tx.Model(&invitation).Update("status", invitation.Status).Error
		}
		invitation.Status = models.InvitationAccepted
		if err := tx.Model(&invitation).Update("status", invitation.Status).Error; err != nil {
			return err
		}
		member := models.CommunityMember{
			CommunityID: invitation.CommunityID,
			UserID:      responderID,
			Role:        models.RoleUser,
		}
		if err := tx.Create(&member).Error; err != nil {
			if isDuplicateErr(err) {
				return apperrors.Conflict(apperrors.ReasonDuplicateMember, "already a member of this community")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ListInvitations pages the invitee's invitations newest first, optionally
// filtered by status.
func (r *PostgresInvitationRepository) ListInvitations(inviteeID uint, status string, p pagination.Params) ([]models.CommunityInvitation, pagination.Page, error) {
	q := r.db.Where("invitee_id = ?", inviteeID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if p.Cursor > 0 {
		q = q.Where("id < ?", p.Cursor)
	}
	var invitations []models.CommunityInvitation
	if err := q.Order("id DESC").Limit(p.Limit + 1).Find(&invitations).Error; err != nil {
		return nil, pagination.Page{}, err
	}
	invitations, page := pagination.Trim(invitations, p.Limit, func(i models.CommunityInvitation) uint { return i.ID })
	return invitations, page, nil
}
