package models

import "time"

// Reaction is a (post, user, type) triple; the unique index makes the
// toggle idempotent under concurrent requests.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_type"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_type"`
	Type      string    `json:"type" gorm:"size:20;uniqueIndex:idx_post_user_type"`
	CreatedAt time.Time `json:"created_at"`
}

type ToggleReactionRequest struct {
	Type string `json:"type" validate:"required,oneof=like love laugh wow sad angry"`
}

// ReactionSummary is a reaction joined with its author for listing.
type ReactionSummary struct {
	Type      string      `json:"type"`
	User      UserCompact `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
}
