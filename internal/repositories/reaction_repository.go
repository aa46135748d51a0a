package repositories

import (
	"errors"

	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/models"
	"gorm.io/gorm"
)

// ToggleResult reports which way a toggle went.
type ToggleResult string

const (
	ToggleAdded   ToggleResult = "added"
	ToggleRemoved ToggleResult = "removed"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	ToggleReaction(postID, userID uint, reactionType string) (ToggleResult, error)
	GetReactionsByPostID(postID uint) ([]models.ReactionSummary, error)
	GetReactionCounts(postID uint) (map[string]int64, error)
}

// PostgresReactionRepository implements ReactionRepository for the relational store
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// ToggleReaction removes the (post, user, type) row if present, otherwise
// inserts it. The lookup and the write share one transaction and the unique
// index on the triple is the backstop: a lost race surfaces as Conflict
// rather than a duplicate row. No statement runs after a failed insert, as
// Postgres aborts the transaction at that point.
func (r *PostgresReactionRepository) ToggleReaction(postID, userID uint, reactionType string) (ToggleResult, error) {
	var result ToggleResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("post_id = ? AND user_id = ? AND type = ?", postID, userID, reactionType).
			First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			result = ToggleRemoved
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			reaction := models.Reaction{PostID: postID, UserID: userID, Type: reactionType}
			if err := tx.Create(&reaction).Error; err != nil {
				if isDuplicateErr(err) {
					return apperrors.Conflict("", "reaction changed concurrently, retry")
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

// GetReactionsByPostID lists reactions with their users, newest first.
func (r *PostgresReactionRepository) GetReactionsByPostID(postID uint) ([]models.ReactionSummary, error) {
	var reactions []models.Reaction
	if err := r.db.Where("post_id = ?", postID).Order("created_at DESC").Find(&reactions).Error; err != nil {
		return nil, err
	}
	summaries := make([]models.ReactionSummary, 0, len(reactions))
	for _, reaction := range reactions {
		var user models.User
		if err := r.db.First(&user, reaction.UserID).Error; err != nil {
			continue
		}
		summaries = append(summaries, models.ReactionSummary{
			Type:      reaction.Type,
			User:      user.ToCompact(),
			CreatedAt: reaction.CreatedAt,
		})
	}
	return summaries, nil
}

func (r *PostgresReactionRepository) GetReactionCounts(postID uint) (map[string]int64, error) {
	type row struct {
		Type  string
		Count int64
	}
	var rows []row
	if err := r.db.Model(&models.Reaction{}).
		Select("type, count(*) as count").
		Where("post_id = ?", postID).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Type] = r.Count
	}
	return counts, nil
}
