package repositories

import (
	"errors"

	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/pagination"
	"github.com/hollowave/hollowave-backend/internal/policy"
	"gorm.io/gorm"
)

// JoinOutcome reports what joinCommunity produced.
type JoinOutcome string

const (
	JoinOutcomeMember    JoinOutcome = "member"
	JoinOutcomeRequested JoinOutcome = "requested"
)

// CommunityRepository defines the interface for community data operations
type CommunityRepository interface {
	CreateCommunity(creatorID uint, name, visibility string) (*models.Community, error)
	GetCommunityByID(id uint) (*models.Community, error)
	GetMember(communityID, userID uint) (*models.CommunityMember, error)
	GetMemberByID(memberID uint) (*models.CommunityMember, error)
	JoinCommunity(userID, communityID uint) (JoinOutcome, error)
	UpdateMemberRole(actorID, communityID, memberID uint, newRole string) (*models.CommunityMember, error)
	RemoveMember(actorID, communityID, memberID uint) error
	ListMembers(communityID uint, p pagination.Params) ([]models.CommunityMember, pagination.Page, error)
	CountAdmins(communityID uint) (int64, error)
}

// PostgresCommunityRepository implements CommunityRepository for the relational store
type PostgresCommunityRepository struct {
	db *gorm.DB
}

// NewPostgresCommunityRepository creates a new PostgresCommunityRepository
func NewPostgresCommunityRepository(db *gorm.DB) *PostgresCommunityRepository {
	return &PostgresCommunityRepository{db: db}
}

// CreateCommunity inserts the community and its creator as the first ADMIN
// member in one transaction.
func (r *PostgresCommunityRepository) CreateCommunity(creatorID uint, name, visibility string) (*models.Community, error) {
	if visibility == "" {
		visibility = models.CommunityPublic
	}
	community := &models.Community{
		Name:       name,
		Visibility: visibility,
		CreatorID:  creatorID,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(community).Error; err != nil {
			return err
		}
		member := models.CommunityMember{
			CommunityID: community.ID,
			UserID:      creatorID,
			Role:        models.RoleAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return community, nil
}

func (r *PostgresCommunityRepository) GetCommunityByID(id uint) (*models.Community, error) {
	var community models.Community
	if err := r.db.First(&community, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("community not found")
		}
		return nil, err
	}
	return &community, nil
}

func (r *PostgresCommunityRepository) GetMember(communityID, userID uint) (*models.CommunityMember, error) {
	var member models.CommunityMember
	err := r.db.Where("community_id = ? AND user_id = ?", communityID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresCommunityRepository) GetMemberByID(memberID uint) (*models.CommunityMember, error) {
	var member models.CommunityMember
	if err := r.db.First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("member not found")
		}
		return nil, err
	}
	return &member, nil
}

// JoinCommunity adds the user directly for PUBLIC communities and records a
// join request for PRIVATE ones. Uniqueness checks run inside the
// transaction; the member and join-request unique indexes are the backstop.
func (r *PostgresCommunityRepository) JoinCommunity(userID, communityID uint) (JoinOutcome, error) {
	var outcome JoinOutcome
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var community models.Community
		if err := tx.First(&community, communityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("community not found")
			}
			return err
		}
		var memberCount int64
		if err := tx.Model(&models.CommunityMember{}).
			Where("community_id = ? AND user_id = ?", communityID, userID).
			Count(&memberCount).Error; err != nil {
			return err
		}
		if memberCount > 0 {
			return apperrors.Conflict(apperrors.ReasonDuplicateMember, "already a member of this community")
		}
		if community.Visibility == models.CommunityPublic {
			member := models.CommunityMember{
				CommunityID: communityID,
				UserID:      userID,
				Role:        models.RoleUser,
			}
			if err := tx.Create(&member).Error; err != nil {
				if isDuplicateErr(err) {
					return apperrors.Conflict(apperrors.ReasonDuplicateMember, "already a member of this community")
				}
				return err
			}
			outcome = JoinOutcomeMember
			return nil
		}
		var pending int64
		if err := tx.Model(&models.JoinRequest{}).
			Where("community_id = ? AND user_id = ?", communityID, userID).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return apperrors.Conflict(apperrors.ReasonDuplicateRequest, "a join request is already pending")
		}
		request := models.JoinRequest{CommunityID: communityID, UserID: userID}
		if err := tx.Create(&request).Error; err != nil {
			if isDuplicateErr(err) {
				return apperrors.Conflict(apperrors.ReasonDuplicateRequest, "a join request is already pending")
			}
			return err
		}
		outcome = JoinOutcomeRequested
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// UpdateMemberRole applies the role-change policy and the update in one
// transaction so the last-admin count cannot go stale between check and write.
func (r *PostgresCommunityRepository) UpdateMemberRole(actorID, communityID, memberID uint, newRole string) (*models.CommunityMember, error) {
	var target models.CommunityMember
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&target, memberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("member not found")
			}
			return err
		}
		if target.CommunityID != communityID {
			return apperrors.NotFound("member not found in this community")
		}
		actor, err := memberInTx(tx, communityID, actorID)
		if err != nil {
			return err
		}
		var adminCount int64
		if err := tx.Model(&models.CommunityMember{}).
			Where("community_id = ? AND role = ?", communityID, models.RoleAdmin).
			Count(&adminCount).Error; err != nil {
			return err
		}
		if err := policy.CanChangeRole(actor, &target, newRole, adminCount); err != nil {
			return err
		}
		target.Role = newRole
		return tx.Model(&target).Update("role", newRole).Error
	})
	if err != nil {
		return nil, err
	}
	return &target, nil
}

// RemoveMember applies the removal policy and the delete in one transaction.
func (r *PostgresCommunityRepository) RemoveMember(actorID, communityID, memberID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var community models.Community
		if err := tx.First(&community, communityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("community not found")
			}
			return err
		}
		var target models.CommunityMember
		if err := tx.First(&target, memberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("member not found")
			}
			return err
		}
		if target.CommunityID != communityID {
			return apperrors.NotFound("member not found in this community")
		}
		actor, err := memberInTx(tx, communityID, actorID)
		if err != nil {
			return err
		}
		if err := policy.CanRemoveMember(actor, &target, community.CreatorID); err != nil {
			return err
		}
		return tx.Delete(&target).Error
	})
}

func (r *PostgresCommunityRepository) ListMembers(communityID uint, p pagination.Params) ([]models.CommunityMember, pagination.Page, error) {
	q := r.db.Where("community_id = ?", communityID)
	if p.Cursor > 0 {
		q = q.Where("id > ?", p.Cursor)
	}
	var members []models.CommunityMember
	if err := q.Order("id ASC").Limit(p.Limit + 1).Find(&members).Error; err != nil {
		return nil, pagination.Page{}, err
	}
	members, page := pagination.Trim(members, p.Limit, func(m models.CommunityMember) uint { return m.ID })
	return members, page, nil
}

func (r *PostgresCommunityRepository) CountAdmins(communityID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND role = ?", communityID, models.RoleAdmin).
		Count(&count).Error
	return count, err
}

func memberInTx(tx *gorm.DB, communityID, userID uint) (*models.CommunityMember, error) {
	var member models.CommunityMember
	err := tx.Where("community_id = ? AND user_id = ?", communityID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}
