package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/mall-api/internal/model"
)

// backdateOrder 把订单的 created_at 拨回 age 之前，模拟早先下的单
func (e *testEnv) backdateOrder(t *testing.T, orderID string, age time.Duration) {
	t.Helper()
	require.NoError(t, e.db.Model(&model.Order{}).
		Where("id = ?", orderID).
		UpdateColumn("created_at", time.Now().Add(-age)).Error)
}

func (e *testEnv) placeSepayOrder(t *testing.T, userID, productTypeID string, number int) *model.Order {
	t.Helper()
	order, err := e.orders.CreateOrder(context.Background(), CreateOrderInput{
		UserID:        userID,
		PaymentMethod: model.PaymentMethodSepay,
		Items:         []OrderItemInput{{ProductTypeID: productTypeID, Number: number}},
	})
	require.NoError(t, err)
	return order
}

func TestIsPaymentExpired(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice@example.com", model.RoleCustomer)
	pt := env.seedProductType(t, 100, 10)

	t.Run("窗口内不过期", func(t *testing.T) {
		order := env.placeSepayOrder(t, user.ID, pt.ID, 1)
		order.CreatedAt = time.Now().Add(-29 * time.Minute)
		assert.False(t, env.checkout.IsPaymentExpired(order))
		assert.Greater(t, env.checkout.PaymentRemainingTime(order), time.Duration(0))
	})

	t.Run("超时即过期", func(t *testing.T) {
		order := env.placeSepayOrder(t, user.ID, pt.ID, 1)
		order.CreatedAt = time.Now().Add(-31 * time.Minute)
		assert.True(t, env.checkout.IsPaymentExpired(order))
		assert.Equal(t, time.Duration(0), env.checkout.PaymentRemainingTime(order))
	})

	t.Run("COD 订单不过期", func(t *testing.T) {
		order := &model.Order{
			Status:        model.OrderStatusPending,
			PaymentMethod: model.PaymentMethodCOD,
		}
		order.CreatedAt = time.Now().Add(-31 * time.Minute)
		assert.False(t, env.checkout.IsPaymentExpired(order))
	})

	t.Run("非 pending 订单不过期", func(t *testing.T) {
		order := &model.Order{
			Status:        model.OrderStatusConfirmed,
			PaymentMethod: model.PaymentMethodSepay,
		}
		order.CreatedAt = time.Now().Add(-31 * time.Minute)
		assert.False(t, env.checkout.IsPaymentExpired(order))
	})
}

// 懒检查：读详情时发现过期，同一次调用内取消订单、取消支付、恢复库存
func TestGetOrderDetail_LazyExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "alice@example.com", model.RoleCustomer)
	pt := env.seedProductType(t, 100, 5)

	order := env.placeSepayOrder(t, user.ID, pt.ID, 2)
	require.Equal(t, 3, env.stockOf(t, pt.ID))
	env.backdateOrder(t, order.ID, 31*time.Minute)

	got, window, err := env.orders.GetOrderDetail(ctx, order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, got.Status)
	require.NotNil(t, got.Payment)
	assert.Equal(t, model.PaymentStatusCancelled, got.Payment.Status)
	assert.Nil(t, window)
	assert.Equal(t, 5, env.stockOf(t, pt.ID))
}

func TestGetOrderDetail_PaymentWindowWithinTimeout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "alice@example.com", model.RoleCustomer)
	pt := env.seedProductType(t, 100, 5)

	order := env.placeSepayOrder(t, user.ID, pt.ID, 1)

	got, window, err := env.orders.GetOrderDetail(ctx, order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, got.Status)
	require.NotNil(t, window)
	assert.True(t, window.ExpiresAt.After(time.Now()))
	assert.Greater(t, window.RemainingSeconds, int64(0))
	assert.LessOrEqual(t, window.RemainingSeconds, int64(30*60))
}

// 补偿幂等：重复触发只恢复一次库存
func TestResolveExpiredPayment_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "alice@example.com", model.RoleCustomer)
	pt := env.seedProductType(t, 100, 5)

	order := env.placeSepayOrder(t, user.ID, pt.ID, 2)
	env.backdateOrder(t, order.ID, 31*time.Minute)
	stale, err := env.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)

	first, err := env.checkout.ResolveExpiredPayment(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, first.Status)
	assert.Equal(t, 5, env.stockOf(t, pt.ID))

	payment, err := env.paymentRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCancelled, payment.Status)

	// 持有同一份过期快照的并发读再次触发：条件更新未命中，不二次恢复
	second, err := env.checkout.ResolveExpiredPayment(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, second.Status)
	assert.Equal(t, 5, env.stockOf(t, pt.ID))
}

// 支付成功的订单即使超时也不被补偿取消
func TestLazyExpiry_SkipsPaidOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "alice@example.com", model.RoleCustomer)
	pt := env.seedProductType(t, 100, 5)

	order := env.placeSepayOrder(t, user.ID, pt.ID, 1)
	_, err := env.orders.ConfirmPayment(ctx, order.ID, "TXN-9")
	require.NoError(t, err)
	_, err = env.orders.UpdateOrderStatus(ctx, order.ID, model.OrderStatusConfirmed, "")
	require.NoError(t, err)
	env.backdateOrder(t, order.ID, 31*time.Minute)

	got, _, err := env.orders.GetOrderDetail(ctx, order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, got.Status)
	assert.Equal(t, 4, env.stockOf(t, pt.ID))
}

func TestExpirePendingPayments_Sweep(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "alice@example.com", model.RoleCustomer)
	pt := env.seedProductType(t, 100, 10)

	expired1 := env.placeSepayOrder(t, user.ID, pt.ID, 1)
	expired2 := env.placeSepayOrder(t, user.ID, pt.ID, 2)
	fresh := env.placeSepayOrder(t, user.ID, pt.ID, 1)
	cod, err := env.orders.CreateOrder(ctx, CreateOrderInput{
		UserID:        user.ID,
		PaymentMethod: model.PaymentMethodCOD,
		Items:         []OrderItemInput{{ProductTypeID: pt.ID, Number: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, 5, env.stockOf(t, pt.ID))

	env.backdateOrder(t, expired1.ID, 45*time.Minute)
	env.backdateOrder(t, expired2.ID, 31*time.Minute)
	env.backdateOrder(t, cod.ID, 45*time.Minute)

	cancelled, err := env.checkout.ExpirePendingPayments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cancelled)

	for _, tc := range []struct {
		orderID string
		want    model.OrderStatus
	}{
		{expired1.ID, model.OrderStatusCancelled},
		{expired2.ID, model.OrderStatusCancelled},
		{fresh.ID, model.OrderStatusPending},
		{cod.ID, model.OrderStatusPending},
	} {
		got, err := env.orderRepo.GetByID(ctx, tc.orderID)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.Status, "order %s", tc.orderID)
	}
	// 两张过期单共 3 件回仓
	assert.Equal(t, 8, env.stockOf(t, pt.ID))
}
