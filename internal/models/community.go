package models

import (
	"time"

	"gorm.io/gorm"
)

// Community visibility values.
const (
	CommunityPublic  = "PUBLIC"
	CommunityPrivate = "PRIVATE"
)

// Member roles, lowest to highest.
const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
	RoleAdmin     = "ADMIN"
)

// Invitation statuses.
const (
	InvitationPending  = "PENDING"
	InvitationAccepted = "ACCEPTED"
	InvitationDeclined = "DECLINED"
)

type Community struct {
	gorm.Model `json:"-"`
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:100"`
	Visibility string    `json:"visibility" gorm:"size:20;default:'PUBLIC'"`
	CreatorID  uint      `json:"creator_id" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
}

type CommunityMember struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CommunityID uint      `json:"community_id" gorm:"index;uniqueIndex:idx_community_user"`
	UserID      uint      `json:"user_id" gorm:"index;uniqueIndex:idx_community_user"`
	Role        string    `json:"role" gorm:"size:20;default:'USER'"`
	CreatedAt   time.Time `json:"created_at"`
}

// JoinRequest is a pending request to join a PRIVATE community.
type JoinRequest struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CommunityID uint      `json:"community_id" gorm:"index;uniqueIndex:idx_community_user_join"`
	UserID      uint      `json:"user_id" gorm:"index;uniqueIndex:idx_community_user_join"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommunityInvitation rows are unique per (community, invitee) only while
// PENDING; a declined invitation does not block a later one, so the check
// lives in the repository transaction rather than in an index.
type CommunityInvitation struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	CommunityID uint   `json:"community_id" gorm:"index"`
	InviterID   uint   `json:"inviter_id" gorm:"index"`
	InviteeID   uint   `json:"invitee_id" gorm:"index"`
	Status      string `json:"status" gorm:"size:20;default:'PENDING'"`
}

type CreateCommunityRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Visibility string `json:"visibility,omitempty" validate:"omitempty,oneof=PUBLIC PRIVATE"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER MODERATOR ADMIN"`
}

type InviteMemberRequest struct {
	InviteeID uint `json:"inviteeId" validate:"required"`
}

type RespondInvitationRequest struct {
	Action string `json:"action" validate:"required,oneof=accept decline"`
}
