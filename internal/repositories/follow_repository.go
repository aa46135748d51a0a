package repositories

import (
	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/pagination"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(followerID, followingID uint) error
	DeleteFollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowers(userID uint, p pagination.Params) ([]models.UserCompact, pagination.Page, error)
	GetFollowing(userID uint, p pagination.Params) ([]models.UserCompact, pagination.Page, error)
	GetFollowersCount(userID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for the relational store
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge; the unique index on the ordered pair turns
// a duplicate into AlreadyFollowing.
func (r *PostgresFollowRepository) CreateFollow(followerID, followingID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.Conflict(apperrors.ReasonAlreadyFollowing, "already following this user")
		}
		follow := models.Follow{FollowerID: followerID, FollowingID: followingID}
		if err := tx.Create(&follow).Error; err != nil {
			if isDuplicateErr(err) {
				return apperrors.Conflict(apperrors.ReasonAlreadyFollowing, "already following this user")
			}
			return err
		}
		return nil
	})
}

// DeleteFollow removes the edge; a missing edge is a no-op.
func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) error {
	return r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowers(userID uint, p pagination.Params) ([]models.UserCompact, pagination.Page, error) {
	return r.pageEdges(p, "following_id = ?", userID, func(f models.Follow) uint { return f.FollowerID })
}

func (r *PostgresFollowRepository) GetFollowing(userID uint, p pagination.Params) ([]models.UserCompact, pagination.Page, error) {
	return r.pageEdges(p, "follower_id = ?", userID, func(f models.Follow) uint { return f.FollowingID })
}

// pageEdges pages follow edges by edge id and resolves the far side of each
// edge to a user summary.
func (r *PostgresFollowRepository) pageEdges(p pagination.Params, cond string, userID uint, farSide func(models.Follow) uint) ([]models.UserCompact, pagination.Page, error) {
	q := r.db.Where(cond, userID)
	if p.Cursor > 0 {
		q = q.Where("id < ?", p.Cursor)
	}
	var edges []models.Follow
	if err := q.Order("id DESC").Limit(p.Limit + 1).Find(&edges).Error; err != nil {
		return nil, pagination.Page{}, err
	}
	edges, page := pagination.Trim(edges, p.Limit, func(f models.Follow) uint { return f.ID })

	users := make([]models.UserCompact, 0, len(edges))
	for _, edge := range edges {
		var user models.User
		if err := r.db.First(&user, farSide(edge)).Error; err != nil {
			continue
		}
		users = append(users, user.ToCompact())
	}
	return users, page, nil
}

func (r *PostgresFollowRepository) GetFollowersCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
