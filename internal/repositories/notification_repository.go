package repositories

import (
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/pagination"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID uint, p pagination.Params) ([]models.Notification, pagination.Page, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAllAsRead(recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, p pagination.Params) ([]models.Notification, pagination.Page, error) {
	q := r.db.Where("recipient_id = ?", recipientID)
	if p.Cursor > 0 {
		q = q.Where("id < ?", p.Cursor)
	}
	var notifications []models.Notification
	if err := q.Order("id DESC").Limit(p.Limit + 1).Find(&notifications).Error; err != nil {
		return nil, pagination.Page{}, err
	}
	notifications, page := pagination.Trim(notifications, p.Limit, func(n models.Notification) uint { return n.ID })
	return notifications, page, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}
