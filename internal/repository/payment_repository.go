package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
)

// PaymentRepository 支付记录仓储
type PaymentRepository interface {
	GetByOrderID(ctx context.Context, orderID string) (*model.Payment, error)

	// UpdateStatus 在事务内更新支付状态（过期取消 / 回调确认）
	UpdateStatus(ctx context.Context, tx *gorm.DB, paymentID string, status model.PaymentStatus) error

	// MarkSuccess 回调确认：仅当仍为 pending 时写入交易号并置 success，返回是否命中
	MarkSuccess(ctx context.Context, tx *gorm.DB, paymentID, transactionID string) (bool, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepository{db: db} }

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	var p model.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, paymentID string, status model.PaymentStatus) error {
	return tx.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Update("status", status).Error
}

func (r *paymentRepository) MarkSuccess(ctx context.Context, tx *gorm.DB, paymentID, transactionID string) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ? AND status = ?", paymentID, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":         model.PaymentStatusSuccess,
			"transaction_id": transactionID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
