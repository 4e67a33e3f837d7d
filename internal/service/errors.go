package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d60-Lab/mall-api/internal/model"
)

var (
	// ErrOrderNotFound 订单不存在或对当前用户不可见（不区分二者，避免泄露存在性）
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderStateChanged 并发更新失败：提交时订单状态已被其他请求改变，调用方可重试
	ErrOrderStateChanged = errors.New("order state changed concurrently, please retry")

	// ErrPaymentNotConfirmed SePay 订单未支付成功前不允许人工确认
	ErrPaymentNotConfirmed = errors.New("sepay order must be paid before confirmation; wait for payment or switch to COD")

	// ErrProductTypeNotFound 下单引用了不存在或已下架的商品变体
	ErrProductTypeNotFound = errors.New("product type not found")

	// ErrVoucherInvalid 优惠券不可用（不存在、已用完、未达门槛）
	ErrVoucherInvalid = errors.New("voucher invalid")

	// ErrNotificationNotFound 通知不存在
	ErrNotificationNotFound = errors.New("notification not found")
)

// InvalidTransitionError 非法状态转移，携带当前允许的目标集合
type InvalidTransitionError struct {
	From    model.OrderStatus
	To      model.OrderStatus
	Allowed []model.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("cannot change status from terminal state %q", e.From)
	}
	targets := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		targets[i] = string(s)
	}
	return fmt.Sprintf("cannot transition from %q to %q, allowed: %s",
		e.From, e.To, strings.Join(targets, ", "))
}

// StockUnavailableError 库存不足，命名变体与请求/可用数量
type StockUnavailableError struct {
	ProductTypeID string
	Requested     int
	Available     int
}

func (e *StockUnavailableError) Error() string {
	return fmt.Sprintf("insufficient stock for product type %s: requested %d, available %d",
		e.ProductTypeID, e.Requested, e.Available)
}
