package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/mall-api/internal/model"
)

var allStatuses = []model.OrderStatus{
	model.OrderStatusPending,
	model.OrderStatusConfirmed,
	model.OrderStatusProcessing,
	model.OrderStatusShipping,
	model.OrderStatusDelivered,
	model.OrderStatusCompleted,
	model.OrderStatusCancelled,
}

func TestValidateTransition_FullMatrix(t *testing.T) {
	allowed := map[model.OrderStatus][]model.OrderStatus{
		model.OrderStatusPending:    {model.OrderStatusConfirmed, model.OrderStatusCancelled},
		model.OrderStatusConfirmed:  {model.OrderStatusProcessing, model.OrderStatusCancelled},
		model.OrderStatusProcessing: {model.OrderStatusShipping, model.OrderStatusCancelled},
		model.OrderStatusShipping:   {model.OrderStatusDelivered},
		model.OrderStatusDelivered:  {model.OrderStatusCompleted},
		model.OrderStatusCompleted:  {},
		model.OrderStatusCancelled:  {},
	}
	isAllowed := func(from, to model.OrderStatus) bool {
		for _, s := range allowed[from] {
			if s == to {
				return true
			}
		}
		return false
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			err := ValidateTransition(from, to)
			if isAllowed(from, to) {
				assert.NoError(t, err, "%s -> %s should be allowed", from, to)
			} else {
				assert.Error(t, err, "%s -> %s should be rejected", from, to)
			}
		}
	}
}

func TestValidateTransition_TerminalStates(t *testing.T) {
	for _, terminal := range []model.OrderStatus{model.OrderStatusCompleted, model.OrderStatusCancelled} {
		assert.Empty(t, AllowedTransitions(terminal))
		assert.True(t, terminal.IsTerminal())

		err := ValidateTransition(terminal, model.OrderStatusPending)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "terminal state")
	}
}

func TestValidateTransition_ErrorNamesAllowedTargets(t *testing.T) {
	err := ValidateTransition(model.OrderStatusProcessing, model.OrderStatusPending)
	require.Error(t, err)

	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, model.OrderStatusProcessing, transitionErr.From)
	assert.Equal(t, model.OrderStatusPending, transitionErr.To)
	assert.ElementsMatch(t,
		[]model.OrderStatus{model.OrderStatusShipping, model.OrderStatusCancelled},
		transitionErr.Allowed)
	assert.Contains(t, err.Error(), "shipping")
	assert.Contains(t, err.Error(), "cancelled")
}

func TestRequiresPaymentConfirmation(t *testing.T) {
	paid := &model.Payment{Status: model.PaymentStatusSuccess}
	unpaid := &model.Payment{Status: model.PaymentStatusPending}

	tests := []struct {
		name    string
		order   *model.Order
		target  model.OrderStatus
		blocked bool
	}{
		{
			name:    "sepay pending without payment",
			order:   &model.Order{Status: model.OrderStatusPending, PaymentMethod: model.PaymentMethodSepay},
			target:  model.OrderStatusConfirmed,
			blocked: true,
		},
		{
			name:    "sepay pending with pending payment",
			order:   &model.Order{Status: model.OrderStatusPending, PaymentMethod: model.PaymentMethodSepay, Payment: unpaid},
			target:  model.OrderStatusConfirmed,
			blocked: true,
		},
		{
			name:    "sepay pending with successful payment",
			order:   &model.Order{Status: model.OrderStatusPending, PaymentMethod: model.PaymentMethodSepay, Payment: paid},
			target:  model.OrderStatusConfirmed,
			blocked: false,
		},
		{
			name:    "cod pending without payment",
			order:   &model.Order{Status: model.OrderStatusPending, PaymentMethod: model.PaymentMethodCOD},
			target:  model.OrderStatusConfirmed,
			blocked: false,
		},
		{
			name:    "sepay pending cancelling",
			order:   &model.Order{Status: model.OrderStatusPending, PaymentMethod: model.PaymentMethodSepay},
			target:  model.OrderStatusCancelled,
			blocked: false,
		},
		{
			name:    "sepay confirmed advancing",
			order:   &model.Order{Status: model.OrderStatusConfirmed, PaymentMethod: model.PaymentMethodSepay},
			target:  model.OrderStatusProcessing,
			blocked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequiresPaymentConfirmation(tt.order, tt.target)
			if tt.blocked {
				assert.ErrorIs(t, err, ErrPaymentNotConfirmed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// 守卫错误与状态机错误必须可区分
func TestPaymentGuardErrorDistinctFromTransitionError(t *testing.T) {
	guardErr := RequiresPaymentConfirmation(
		&model.Order{Status: model.OrderStatusPending, PaymentMethod: model.PaymentMethodSepay},
		model.OrderStatusConfirmed,
	)
	require.Error(t, guardErr)

	var transitionErr *InvalidTransitionError
	assert.False(t, errors.As(guardErr, &transitionErr))
	assert.Contains(t, guardErr.Error(), "paid")
}
