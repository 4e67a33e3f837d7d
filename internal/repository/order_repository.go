package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
)

// ListOrdersQuery 订单列表查询条件
type ListOrdersQuery struct {
	UserID    string // 为空时不按用户过滤（管理端）
	Status    model.OrderStatus
	SortOrder string // asc / desc，默认 desc
	Skip      int
	Limit     int
}

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// Create 在事务内落单（级联写入 details / payment）
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error

	// GetByID 查询订单及关联（details/payment/voucher/address），不含已删除
	GetByID(ctx context.Context, orderID string) (*model.Order, error)

	// List 分页查询订单
	List(ctx context.Context, q ListOrdersQuery) ([]*model.Order, int64, error)

	// UpdateStatusIf 条件更新状态：仅当当前状态仍为 from 时生效，返回是否命中。
	// 并发写冲突由该条件更新裁决，输掉的一方拿到 false。
	UpdateStatusIf(ctx context.Context, tx *gorm.DB, orderID string, from, to model.OrderStatus, updatedBy *string) (bool, error)

	// ListPendingBefore 查询创建时间早于 cutoff 的 pending 订单（按支付方式过滤），用于过期扫描
	ListPendingBefore(ctx context.Context, paymentMethod string, cutoff time.Time) ([]*model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepository{db: db} }

func (r *orderRepository) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Details.ProductType").
		Preload("Payment").
		Preload("Voucher").
		Preload("Address").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, q ListOrdersQuery) ([]*model.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Order{})
	if q.UserID != "" {
		query = query.Where("user_id = ?", q.UserID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if q.SortOrder == "asc" {
		order = "created_at ASC"
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}

	var orders []*model.Order
	err := query.
		Preload("Details").
		Preload("Details.ProductType").
		Order(order).
		Offset(q.Skip).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) UpdateStatusIf(ctx context.Context, tx *gorm.DB, orderID string, from, to model.OrderStatus, updatedBy *string) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if updatedBy != nil {
		updates["updated_by"] = *updatedBy
	}
	res := tx.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepository) ListPendingBefore(ctx context.Context, paymentMethod string, cutoff time.Time) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Payment").
		Where("status = ? AND payment_method = ? AND created_at < ?", model.OrderStatusPending, paymentMethod, cutoff).
		Find(&orders).Error
	return orders, err
}
