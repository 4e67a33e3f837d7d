package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/notification"
	"github.com/d60-Lab/mall-api/internal/repository"
)

func newNotificationService(t *testing.T) (*NotificationService, *testEnv, *notification.Hub) {
	t.Helper()
	env := newTestEnv(t)
	hub := notification.NewHub()
	svc := NewNotificationService(repository.NewNotificationRepository(env.db), env.userRepo, hub)
	return svc, env, hub
}

func TestOrderCreated_NotifiesAdmins(t *testing.T) {
	svc, env, hub := newNotificationService(t)
	ctx := context.Background()
	customer := env.seedUser(t, "alice@example.com", model.RoleCustomer)
	admin1 := env.seedUser(t, "admin1@example.com", model.RoleAdmin)
	admin2 := env.seedUser(t, "admin2@example.com", model.RoleAdmin)

	ch, cancel := hub.Subscribe(admin1.ID)
	defer cancel()

	order := &model.Order{UserID: customer.ID, FinalAmount: 150}
	order.ID = "order-1"
	svc.OrderCreated(ctx, order, "Alice")

	// 每个管理员各落一条
	for _, adminID := range []string{admin1.ID, admin2.ID} {
		ns, total, err := svc.ListByUser(ctx, adminID, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, model.NotificationTypeNewOrder, ns[0].Type)
	}
	// 在线订阅者立刻收到
	require.Len(t, ch, 1)
	// 下单客户不收新订单通知
	_, total, err := svc.ListByUser(ctx, customer.ID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

// 没有管理员时分发静默返回，不影响触发方
func TestOrderCreated_NoAdminsIsNoop(t *testing.T) {
	svc, env, _ := newNotificationService(t)
	customer := env.seedUser(t, "alice@example.com", model.RoleCustomer)

	order := &model.Order{UserID: customer.ID}
	order.ID = "order-1"
	svc.OrderCreated(context.Background(), order, "Alice")
}

func TestOrderStatusChanged_NotifiesCustomer(t *testing.T) {
	svc, env, hub := newNotificationService(t)
	ctx := context.Background()
	customer := env.seedUser(t, "alice@example.com", model.RoleCustomer)

	ch, cancel := hub.Subscribe(customer.ID)
	defer cancel()

	order := &model.Order{UserID: customer.ID, Status: model.OrderStatusConfirmed}
	order.ID = "order-1"
	svc.OrderStatusChanged(ctx, order, "admin-1")

	ns, total, err := svc.ListByUser(ctx, customer.ID, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, model.NotificationTypeOrderStatus, ns[0].Type)
	assert.Contains(t, ns[0].Content, "confirmed")
	assert.Len(t, ch, 1)
}

func TestMarkRead_ScopedToOwner(t *testing.T) {
	svc, env, _ := newNotificationService(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice@example.com", model.RoleCustomer)
	bob := env.seedUser(t, "bob@example.com", model.RoleCustomer)

	order := &model.Order{UserID: alice.ID, Status: model.OrderStatusConfirmed}
	order.ID = "order-1"
	svc.OrderStatusChanged(ctx, order, "")

	ns, _, err := svc.ListByUser(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, ns, 1)

	// 他人标记不生效
	require.NoError(t, svc.MarkRead(ctx, bob.ID, ns[0].ID))
	ns, _, err = svc.ListByUser(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	assert.False(t, ns[0].IsRead)

	require.NoError(t, svc.MarkRead(ctx, alice.ID, ns[0].ID))
	ns, _, err = svc.ListByUser(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	assert.True(t, ns[0].IsRead)
}
