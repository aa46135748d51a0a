package repositories

import (
	"errors"

	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/pagination"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	ToggleBookmark(userID, postID uint) (ToggleResult, error)
	GetBookmarkedPosts(userID uint, p pagination.Params) ([]models.Post, pagination.Page, error)
	IsBookmarked(userID, postID uint) (bool, error)
}

// PostgresBookmarkRepository implements BookmarkRepository for the relational store
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

// NewPostgresBookmarkRepository creates a new PostgresBookmarkRepository
func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// ToggleBookmark follows the same transactional toggle shape as reactions:
// a lost insert race surfaces as Conflict, since Postgres aborts the
// transaction after the failed statement.
func (r *PostgresBookmarkRepository) ToggleBookmark(userID, postID uint) (ToggleResult, error) {
	var result ToggleResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Bookmark
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			result = ToggleRemoved
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			bookmark := models.Bookmark{UserID: userID, PostID: postID}
			if err := tx.Create(&bookmark).Error; err != nil {
				if isDuplicateErr(err) {
					return apperrors.Conflict("", "bookmark changed concurrently, retry")
				}
				return err
			}
			result = ToggleAdded
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// GetBookmarkedPosts pages through the user's saved posts, most recently
// bookmarked first. The cursor is the bookmark id.
func (r *PostgresBookmarkRepository) GetBookmarkedPosts(userID uint, p pagination.Params) ([]models.Post, pagination.Page, error) {
	q := r.db.Where("user_id = ?", userID)
	if p.Cursor > 0 {
		q = q.Where("id < ?", p.Cursor)
	}
	var bookmarks []models.Bookmark
	if err := q.Order("id DESC").Limit(p.Limit + 1).Find(&bookmarks).Error; err != nil {
		return nil, pagination.Page{}, err
	}
	bookmarks, page := pagination.Trim(bookmarks, p.Limit, func(b models.Bookmark) uint { return b.ID })

	posts := make([]models.Post, 0, len(bookmarks))
	for _, b := range bookmarks {
		var post models.Post
		if err := r.db.Preload("Media").First(&post, b.PostID).Error; err != nil {
			continue
		}
		posts = append(posts, post)
	}
	return posts, page, nil
}

func (r *PostgresBookmarkRepository) IsBookmarked(userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Bookmark{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
