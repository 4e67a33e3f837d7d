package service

import (
	"github.com/d60-Lab/mall-api/internal/model"
)

// validTransitions 订单状态转移表，未列出的转移一律非法
var validTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusConfirmed:  {model.OrderStatusProcessing, model.OrderStatusCancelled},
	model.OrderStatusProcessing: {model.OrderStatusShipping, model.OrderStatusCancelled},
	model.OrderStatusShipping:   {model.OrderStatusDelivered},
	model.OrderStatusDelivered:  {model.OrderStatusCompleted},
	model.OrderStatusCompleted:  {}, // 终态
	model.OrderStatusCancelled:  {}, // 终态
}

// CanTransition 判断 current -> target 是否合法
func CanTransition(current, target model.OrderStatus) bool {
	for _, s := range validTransitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

// AllowedTransitions 返回 current 状态允许的目标集合
func AllowedTransitions(current model.OrderStatus) []model.OrderStatus {
	return validTransitions[current]
}

// ValidateTransition 校验状态转移，非法时返回 *InvalidTransitionError。
// 本函数不改状态，调用方在校验通过后自行应用新状态。
func ValidateTransition(current, target model.OrderStatus) error {
	if CanTransition(current, target) {
		return nil
	}
	return &InvalidTransitionError{From: current, To: target, Allowed: validTransitions[current]}
}

// RequiresPaymentConfirmation SePay 支付确认守卫：pending -> confirmed 且支付方式为
// SEPAY 时，必须已有 success 状态的支付记录。先于 ValidateTransition 执行，
// 错误与"非法转移"区分开。
func RequiresPaymentConfirmation(order *model.Order, target model.OrderStatus) error {
	if order.Status != model.OrderStatusPending || target != model.OrderStatusConfirmed {
		return nil
	}
	if order.PaymentMethod != model.PaymentMethodSepay {
		return nil
	}
	if order.Payment == nil || order.Payment.Status != model.PaymentStatusSuccess {
		return ErrPaymentNotConfirmed
	}
	return nil
}
