package models

import (
	"time"

	"gorm.io/gorm"
)

// Post visibility values.
const (
	VisibilityPublic    = "public"
	VisibilityFollowers = "followers"
)

// Post is a node in a reply tree. ParentID is nil for top-level posts and is
// assigned exactly once at creation, so the tree cannot contain cycles.
type Post struct {
	gorm.Model `json:"-"`
	ID         uint              `json:"id" gorm:"primaryKey"`
	AuthorID   uint              `json:"author_id" gorm:"index"`
	Content    string            `json:"content"`
	ParentID   *uint             `json:"parent_id,omitempty" gorm:"index"`
	Visibility string            `json:"visibility" gorm:"size:20;default:'followers'"`
	Media      []MediaAttachment `json:"media,omitempty" gorm:"foreignKey:PostID"`
	CreatedAt  time.Time         `json:"created_at" gorm:"index"`
}

// MediaAttachment references an uploaded file by opaque id; the storage
// backend itself is external.
type MediaAttachment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	PostID    uint      `json:"post_id" gorm:"index"`
	URL       string    `json:"url"`
	Type      string    `json:"type" gorm:"size:10"` // image or video
	CreatedAt time.Time `json:"created_at"`
}

type CreatePostRequest struct {
	Content    string              `json:"content" validate:"required,min=1,max=2000"`
	ParentID   *uint               `json:"parent_id,omitempty"`
	Visibility string              `json:"visibility,omitempty" validate:"omitempty,oneof=public followers"`
	Media      []MediaInputRequest `json:"media,omitempty" validate:"omitempty,max=10,dive"`
}

type MediaInputRequest struct {
	URL  string `json:"url" validate:"required,url"`
	Type string `json:"type" validate:"required,oneof=image video"`
}

type UpdatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}
