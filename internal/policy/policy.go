// Package policy holds the per-operation authorization rules. Functions are
// pure: callers load the relevant rows and pass them in, so the rules can be
// checked inside the same transaction that applies the change.
package policy

import (
	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/models"
)

// CanChangeRole decides whether actor may set target's role to newRole.
// adminCount is the current number of ADMIN members in the community.
func CanChangeRole(actor, target *models.CommunityMember, newRole string, adminCount int64) error {
	if actor == nil {
		return apperrors.Forbidden(apperrors.ReasonInsufficientRole, "not a member of this community")
	}
	if actor.Role != models.RoleAdmin {
		return apperrors.Forbidden(apperrors.ReasonInsufficientRole, "only admins may change member roles")
	}
	if target.Role == models.RoleAdmin && newRole != models.RoleAdmin && adminCount <= 1 {
		return apperrors.Conflict(apperrors.ReasonLastAdminViolation, "community must retain at least one admin")
	}
	return nil
}

// CanRemoveMember decides whether actor may remove target from the community.
// The creator check runs before any role check.
func CanRemoveMember(actor, target *models.CommunityMember, creatorID uint) error {
	if target.UserID == creatorID {
		return apperrors.Forbidden(apperrors.ReasonCreatorProtected, "the community creator cannot be removed")
	}
	if actor == nil {
		return apperrors.Forbidden(apperrors.ReasonInsufficientRole, "not a member of this community")
	}
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleModerator:
		if target.Role == models.RoleAdmin || target.Role == models.RoleModerator {
			return apperrors.Forbidden(apperrors.ReasonInsufficientRole, "moderators may only remove regular members")
		}
		return nil
	default:
		return apperrors.Forbidden(apperrors.ReasonInsufficientRole, "insufficient role to remove members")
	}
}

// CanEditPost allows only the author, compared by stable user id.
func CanEditPost(principalID uint, post *models.Post) error {
	if post.AuthorID != principalID {
		return apperrors.Forbidden("", "only the author may edit this post")
	}
	return nil
}

// CanRespondConnection allows only the target of a PENDING request to respond.
func CanRespondConnection(principalID uint, conn *models.Connection) error {
	if conn.TargetID != principalID {
		return apperrors.Forbidden("", "only the recipient may respond to this request")
	}
	if conn.Status != models.ConnectionPending {
		return apperrors.Conflict("", "connection request is no longer pending")
	}
	return nil
}
