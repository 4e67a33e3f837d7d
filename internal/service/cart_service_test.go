package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/repository"
)

func TestCartService_SetItemUpserts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewCartService(repository.NewCartRepository(env.db), env.ptRepo)
	user := env.seedUser(t, "alice@example.com", model.RoleCustomer)
	pt := env.seedProductType(t, 100, 5)

	require.NoError(t, svc.SetItem(ctx, user.ID, pt.ID, 2))
	// 同一变体再次设置是覆盖而非追加条目
	require.NoError(t, svc.SetItem(ctx, user.ID, pt.ID, 4))

	cart, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Number)
}

func TestCartService_SetItemValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewCartService(repository.NewCartRepository(env.db), env.ptRepo)
	user := env.seedUser(t, "alice@example.com", model.RoleCustomer)
	pt := env.seedProductType(t, 100, 5)

	assert.Error(t, svc.SetItem(ctx, user.ID, pt.ID, 0))
	assert.ErrorIs(t, svc.SetItem(ctx, user.ID, "no-such-id", 1), ErrProductTypeNotFound)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewCartService(repository.NewCartRepository(env.db), env.ptRepo)
	user := env.seedUser(t, "alice@example.com", model.RoleCustomer)
	ptA := env.seedProductType(t, 100, 5)
	ptB := env.seedProductType(t, 50, 5)

	require.NoError(t, svc.SetItem(ctx, user.ID, ptA.ID, 1))
	require.NoError(t, svc.SetItem(ctx, user.ID, ptB.ID, 2))

	require.NoError(t, svc.RemoveItem(ctx, user.ID, ptA.ID))
	cart, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, ptB.ID, cart.Items[0].ProductTypeID)

	require.NoError(t, svc.Clear(ctx, user.ID))
	cart, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// 移除过的变体可以重新加入
	require.NoError(t, svc.SetItem(ctx, user.ID, ptA.ID, 3))
	cart, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Number)
}

func TestWishlistService_AddIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewWishlistService(repository.NewWishlistRepository(env.db), env.ptRepo)
	user := env.seedUser(t, "alice@example.com", model.RoleCustomer)
	pt := env.seedProductType(t, 100, 5)

	require.NoError(t, svc.AddItem(ctx, user.ID, pt.ID))
	require.NoError(t, svc.AddItem(ctx, user.ID, pt.ID))

	wl, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, wl.Items, 1)

	require.NoError(t, svc.RemoveItem(ctx, user.ID, pt.ID))
	wl, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, wl.Items)
}
