package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/notification"
	"github.com/d60-Lab/mall-api/internal/repository"
	"github.com/d60-Lab/mall-api/pkg/logger"
)

// Notifier 订单事件通知分发器。fire-and-forget：实现失败只记日志，
// 绝不反过来让触发它的订单操作失败。
type Notifier interface {
	OrderCreated(ctx context.Context, order *model.Order, customerName string)
	OrderStatusChanged(ctx context.Context, order *model.Order, updatedBy string)
}

// NotificationService 站内通知：落库 + Hub 推送在线订阅者
type NotificationService struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
	hub      *notification.Hub
}

func NewNotificationService(
	repo repository.NotificationRepository,
	userRepo repository.UserRepository,
	hub *notification.Hub,
) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, hub: hub}
}

// OrderCreated 通知所有管理员有新订单
func (s *NotificationService) OrderCreated(ctx context.Context, order *model.Order, customerName string) {
	admins, err := s.userRepo.ListByRole(ctx, model.RoleAdmin)
	if err != nil {
		logger.Error("notify new order: list admins", zap.String("order_id", order.ID), zap.Error(err))
		return
	}

	orderID := order.ID
	ns := make([]*model.Notification, 0, len(admins))
	for _, admin := range admins {
		ns = append(ns, &model.Notification{
			UserID:  admin.ID,
			Type:    model.NotificationTypeNewOrder,
			Title:   "New order received",
			Content: fmt.Sprintf("%s placed an order of %.2f", customerName, order.FinalAmount),
			OrderID: &orderID,
		})
	}
	if err := s.repo.CreateBatch(ctx, ns); err != nil {
		logger.Error("notify new order: persist", zap.String("order_id", order.ID), zap.Error(err))
		return
	}
	for _, n := range ns {
		s.hub.Publish(n.UserID, n)
	}
}

// OrderStatusChanged 通知下单用户状态变更
func (s *NotificationService) OrderStatusChanged(ctx context.Context, order *model.Order, updatedBy string) {
	orderID := order.ID
	n := &model.Notification{
		UserID:  order.UserID,
		Type:    model.NotificationTypeOrderStatus,
		Title:   "Order status updated",
		Content: fmt.Sprintf("Your order is now %s", order.Status),
		OrderID: &orderID,
	}
	if updatedBy != "" {
		n.CreatedBy = &updatedBy
	}
	if err := s.repo.Create(ctx, n); err != nil {
		logger.Error("notify status change: persist", zap.String("order_id", order.ID), zap.Error(err))
		return
	}
	s.hub.Publish(n.UserID, n)
}

// ListByUser 查询用户通知
func (s *NotificationService) ListByUser(ctx context.Context, userID string, skip, limit int) ([]*model.Notification, int64, error) {
	return s.repo.ListByUser(ctx, userID, skip, limit)
}

// MarkRead 标记已读
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}
