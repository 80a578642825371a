package repository

import (
	"github.com/linskybing/simtrack/internal/domain/notification"
	"gorm.io/gorm"
)

type NotificationRepo interface {
	CreateNotification(n *notification.Notification) error
	ListByUser(userID uint, unreadOnly bool, limit int) ([]notification.Notification, error)
	MarkRead(id, userID uint) error
	MarkAllRead(userID uint) (int64, error)
	WithTx(tx *gorm.DB) NotificationRepo
}

type DBNotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *DBNotificationRepo {
	return &DBNotificationRepo{
		db: db,
	}
}

func (r *DBNotificationRepo) CreateNotification(n *notification.Notification) error {
	return r.db.Create(n).Error
}

func (r *DBNotificationRepo) ListByUser(userID uint, unreadOnly bool, limit int) ([]notification.Notification, error) {
	var ns []notification.Notification
	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("created_at DESC").Find(&ns).Error
	return ns, err
}

func (r *DBNotificationRepo) MarkRead(id, userID uint) error {
	res := r.db.Model(&notification.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBNotificationRepo) MarkAllRead(userID uint) (int64, error) {
	res := r.db.Model(&notification.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *DBNotificationRepo) WithTx(tx *gorm.DB) NotificationRepo {
	if tx == nil {
		return r
	}
	return &DBNotificationRepo{
		db: tx,
	}
}
