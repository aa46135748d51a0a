package repositories

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/pagination"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(authorID uint, req *models.CreatePostRequest) (*models.Post, error)
	GetPostByID(id uint) (*models.Post, error)
	UpdatePost(post *models.Post) error
	GetFeed(viewerID uint, p pagination.Params) ([]models.Post, pagination.Page, error)
	GetReplies(parentID uint, p pagination.Params) ([]models.Post, pagination.Page, error)
	GetThread(rootID uint) (*models.Post, []models.Post, error)
	GetPostsByAuthor(authorID uint, p pagination.Params) ([]models.Post, pagination.Page, error)
}

// PostgresPostRepository implements PostRepository for the relational store
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost inserts a post and its media attachments. The parent existence
// check runs in the same transaction as the insert.
func (r *PostgresPostRepository) CreatePost(authorID uint, req *models.CreatePostRequest) (*models.Post, error) {
	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityFollowers
	}
	post := &models.Post{
		AuthorID:   authorID,
		Content:    req.Content,
		ParentID:   req.ParentID,
		Visibility: visibility,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if req.ParentID != nil {
			var count int64
			if err := tx.Model(&models.Post{}).Where("id = ?", *req.ParentID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return &apperrors.AppError{
					StatusCode: http.StatusNotFound,
					Reason:     apperrors.ReasonParentNotFound,
					Message:    "parent post not found",
				}
			}
		}
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for _, m := range req.Media {
			attachment := models.MediaAttachment{
				ID:        uuid.NewString(),
				PostID:    post.ID,
				URL:       m.URL,
				Type:      m.Type,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(&attachment).Error; err != nil {
				return err
			}
			post.Media = append(post.Media, attachment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Media").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post not found")
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// GetFeed returns posts visible to the viewer, newest first. Visibility is a
// single three-way OR in the query: own posts, public posts, and posts by
// authors the viewer follows.
func (r *PostgresPostRepository) GetFeed(viewerID uint, p pagination.Params) ([]models.Post, pagination.Page, error) {
	followingIDs := r.db.Model(&models.Follow{}).
		Select("following_id").
		Where("follower_id = ?", viewerID)

	q := r.db.Preload("Media").
		Where("parent_id IS NULL").
		Where("author_id = ? OR visibility = ? OR author_id IN (?)",
			viewerID, models.VisibilityPublic, followingIDs)
	if p.Cursor > 0 {
		q = q.Where("id < ?", p.Cursor)
	}

	var posts []models.Post
	if err := q.Order("id DESC").Limit(p.Limit + 1).Find(&posts).Error; err != nil {
		return nil, pagination.Page{}, err
	}
	posts, page := pagination.Trim(posts, p.Limit, func(post models.Post) uint { return post.ID })
	return posts, page, nil
}

// GetReplies lists direct replies newest first.
func (r *PostgresPostRepository) GetReplies(parentID uint, p pagination.Params) ([]models.Post, pagination.Page, error) {
	q := r.db.Preload("Media").Where("parent_id = ?", parentID)
	if p.Cursor > 0 {
		q = q.Where("id < ?", p.Cursor)
	}
	var replies []models.Post
	if err := q.Order("id DESC").Limit(p.Limit + 1).Find(&replies).Error; err != nil {
		return nil, pagination.Page{}, err
	}
	replies, page := pagination.Trim(replies, p.Limit, func(post models.Post) uint { return post.ID })
	return replies, page, nil
}

// GetThread returns the root post and its direct replies oldest first.
func (r *PostgresPostRepository) GetThread(rootID uint) (*models.Post, []models.Post, error) {
	root, err := r.GetPostByID(rootID)
	if err != nil {
		return nil, nil, err
	}
	var replies []models.Post
	if err := r.db.Preload("Media").
		Where("parent_id = ?", rootID).
		Order("id ASC").
		Find(&replies).Error; err != nil {
		return nil, nil, err
	}
	return root, replies, nil
}

func (r *PostgresPostRepository) GetPostsByAuthor(authorID uint, p pagination.Params) ([]models.Post, pagination.Page, error) {
	q := r.db.Preload("Media").Where("author_id = ? AND parent_id IS NULL", authorID)
	if p.Cursor > 0 {
		q = q.Where("id < ?", p.Cursor)
	}
	var posts []models.Post
	if err := q.Order("id DESC").Limit(p.Limit + 1).Find(&posts).Error; err != nil {
		return nil, pagination.Page{}, err
	}
	posts, page := pagination.Trim(posts, p.Limit, func(post models.Post) uint { return post.ID })
	return posts, page, nil
}
