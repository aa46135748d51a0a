package models

import "time"

// Follow is a directed, asymmetric edge; no acceptance step.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

type FollowActionRequest struct {
	TargetUserID uint   `json:"targetUserId" validate:"required"`
	Action       string `json:"action" validate:"required,oneof=follow unfollow"`
}
