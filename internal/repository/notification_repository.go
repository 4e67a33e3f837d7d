package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
)

// NotificationRepository 站内通知仓储
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	CreateBatch(ctx context.Context, ns []*model.Notification) error
	ListByUser(ctx context.Context, userID string, skip, limit int) ([]*model.Notification, int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) CreateBatch(ctx context.Context, ns []*model.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(ns).Error
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, skip, limit int) ([]*model.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Notification{}).Where("user_id = ?", userID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 20
	}
	var ns []*model.Notification
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&ns).Error
	return ns, total, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}
