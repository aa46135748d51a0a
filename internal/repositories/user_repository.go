package repositories

import (
	"encoding/json"
	"errors"

	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UpdateUser(user *models.User) error
	CompleteOnboarding(userID uint, name, username, image string) (*models.User, error)
	GetPreferences(userID uint) (map[string]any, error)
	MergePreferences(userID uint, patch map[string]any) (map[string]any, error)
}

// PostgresUserRepository implements UserRepository for the relational store
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if isDuplicateErr(err) {
			return apperrors.Conflict("", "username or email already taken")
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// CompleteOnboarding sets the profile fields and flips the onboarded flag.
// The username uniqueness check and the update run in one transaction.
func (r *PostgresUserRepository) CompleteOnboarding(userID uint, name, username, image string) (*models.User, error) {
	var user models.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("user not found")
			}
			return err
		}
		var taken int64
		if err := tx.Model(&models.User{}).
			Where("username = ? AND id <> ?", username, userID).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return apperrors.Conflict("", "username already taken")
		}
		user.Name = name
		user.Username = username
		if image != "" {
			user.Image = image
		}
		user.Onboarded = true
		if err := tx.Save(&user).Error; err != nil {
			if isDuplicateErr(err) {
				return apperrors.Conflict("", "username already taken")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetPreferences(userID uint) (map[string]any, error) {
	user, err := r.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	prefs := map[string]any{}
	if len(user.Preferences) > 0 {
		if err := json.Unmarshal(user.Preferences, &prefs); err != nil {
			return nil, err
		}
	}
	return prefs, nil
}

// MergePreferences shallow-merges patch into the stored bag. Known keys are
// validated by the handler; unknown keys pass through opaquely. A nil value
// in patch deletes the key.
func (r *PostgresUserRepository) MergePreferences(userID uint, patch map[string]any) (map[string]any, error) {
	var merged map[string]any
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("user not found")
			}
			return err
		}
		merged = map[string]any{}
		if len(user.Preferences) > 0 {
			if err := json.Unmarshal(user.Preferences, &merged); err != nil {
				return err
			}
		}
		for k, v := range patch {
			if v == nil {
				delete(merged, k)
				continue
			}
			merged[k] = v
		}
		raw, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		return tx.Model(&user).Update("preferences", datatypes.JSON(raw)).Error
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}
