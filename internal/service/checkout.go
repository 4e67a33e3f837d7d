package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/repository"
	"github.com/d60-Lab/mall-api/pkg/logger"
)

// CheckoutService 管理 SePay 类异步支付的支付窗口：计算剩余时间、
// 检测过期并执行补偿（取消订单 + 取消支付 + 恢复库存）。
// 过期采用懒检查：读到 pending 订单时触发，不依赖后台定时器。
type CheckoutService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	ledger      *StockLedger
	typeCache   TypeCacheInvalidator
	timeout     time.Duration
}

func NewCheckoutService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	ledger *StockLedger,
	typeCache TypeCacheInvalidator,
	timeoutMinutes int,
) *CheckoutService {
	if timeoutMinutes <= 0 {
		timeoutMinutes = 30
	}
	return &CheckoutService{
		db:          db,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		ledger:      ledger,
		typeCache:   typeCache,
		timeout:     time.Duration(timeoutMinutes) * time.Minute,
	}
}

// PaymentExpiresAt 支付截止时间（created_at + timeout）
func (s *CheckoutService) PaymentExpiresAt(order *model.Order) time.Time {
	return order.CreatedAt.Add(s.timeout)
}

// IsPaymentExpired 仅 pending + SEPAY 订单会过期
func (s *CheckoutService) IsPaymentExpired(order *model.Order) bool {
	if order.Status != model.OrderStatusPending || order.PaymentMethod != model.PaymentMethodSepay {
		return false
	}
	return time.Now().After(s.PaymentExpiresAt(order))
}

// PaymentRemainingTime 支付窗口剩余时长，过期后为 0
func (s *CheckoutService) PaymentRemainingTime(order *model.Order) time.Duration {
	remaining := time.Until(s.PaymentExpiresAt(order))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ResolveExpiredPayment 过期补偿，单事务内完成：
//  1. 条件更新 pending -> cancelled（并发读同时触发时只有一方命中，未命中方直接返回）
//  2. 支付记录置 cancelled
//  3. 恢复库存
//
// 过期取消是系统发起的终态转移，绕过常规状态机校验。
// 返回补偿后的订单（未命中时返回重新加载的当前订单）。
func (s *CheckoutService) ResolveExpiredPayment(ctx context.Context, order *model.Order) (*model.Order, error) {
	cancelled := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.orderRepo.UpdateStatusIf(ctx, tx, order.ID, model.OrderStatusPending, model.OrderStatusCancelled, nil)
		if err != nil {
			return err
		}
		if !ok {
			// 已被并发请求处理（或支付回调抢先确认），无需补偿
			return nil
		}
		cancelled = true
		if order.Payment != nil {
			if err := s.paymentRepo.UpdateStatus(ctx, tx, order.Payment.ID, model.PaymentStatusCancelled); err != nil {
				return err
			}
		}
		if err := s.ledger.Restore(ctx, tx, order); err != nil {
			return err
		}
		logger.Info("payment window expired, order auto-cancelled",
			zap.String("order_id", order.ID),
			zap.Time("expired_at", s.PaymentExpiresAt(order)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if cancelled && s.typeCache != nil {
		ids := make([]string, 0, len(order.Details))
		for _, d := range order.Details {
			ids = append(ids, d.ProductTypeID)
		}
		s.typeCache.InvalidateTypes(ctx, ids...)
	}
	return s.orderRepo.GetByID(ctx, order.ID)
}

// ExpirePendingPayments 主动扫描过期订单并逐单补偿，供 cmd/sweeper 等外部调度使用。
// 与懒检查共用同一补偿路径，重复触发安全。返回成功取消的订单数。
func (s *CheckoutService) ExpirePendingPayments(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.timeout)
	orders, err := s.orderRepo.ListPendingBefore(ctx, model.PaymentMethodSepay, cutoff)
	if err != nil {
		return 0, err
	}
	cancelled := 0
	for _, order := range orders {
		resolved, err := s.ResolveExpiredPayment(ctx, order)
		if err != nil {
			logger.Error("expire sweep: resolve failed", zap.String("order_id", order.ID), zap.Error(err))
			continue
		}
		if resolved.Status == model.OrderStatusCancelled {
			cancelled++
		}
	}
	return cancelled, nil
}
