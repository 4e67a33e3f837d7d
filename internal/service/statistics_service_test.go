package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/repository"
)

func newStatisticsService(t *testing.T) (*StatisticsService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	return NewStatisticsService(repository.NewStatisticsRepository(env.db)), env
}

// seedOrderWith 直接落一条指定状态的单行订单，绕过下单流程
func (e *testEnv) seedOrderWith(t *testing.T, userID string, status model.OrderStatus, pt *model.ProductType, number int) *model.Order {
	t.Helper()
	amount := pt.Price * float64(number)
	order := &model.Order{
		UserID:        userID,
		Status:        status,
		PaymentMethod: model.PaymentMethodCOD,
		TotalAmount:   amount,
		FinalAmount:   amount,
		Details: []model.OrderDetail{
			{ProductTypeID: pt.ID, Price: pt.Price, Number: number},
		},
	}
	require.NoError(t, e.db.Create(order).Error)
	return order
}

func TestBestSelling_RanksByUnitsAndExcludesCancelled(t *testing.T) {
	svc, env := newStatisticsService(t)
	ctx := context.Background()
	user := env.seedUser(t, "buyer@example.com", model.RoleCustomer)
	ptA := env.seedProductType(t, 100, 50)
	ptB := env.seedProductType(t, 50, 50)

	env.seedOrderWith(t, user.ID, model.OrderStatusCompleted, ptA, 3)
	env.seedOrderWith(t, user.ID, model.OrderStatusPending, ptA, 1)
	env.seedOrderWith(t, user.ID, model.OrderStatusCompleted, ptB, 2)
	// 取消订单不计入销量
	env.seedOrderWith(t, user.ID, model.OrderStatusCancelled, ptB, 10)

	items, err := svc.BestSelling(ctx, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(4), items[0].TotalSold)
	assert.Equal(t, 400.0, items[0].TotalRevenue)
	assert.Equal(t, int64(2), items[1].TotalSold)
	assert.Equal(t, 100.0, items[1].TotalRevenue)
}

func TestBestSelling_SkipsInactiveProducts(t *testing.T) {
	svc, env := newStatisticsService(t)
	ctx := context.Background()
	user := env.seedUser(t, "buyer@example.com", model.RoleCustomer)

	hidden := &model.Product{Name: "Discontinued", IsActive: false}
	require.NoError(t, env.db.Create(hidden).Error)
	hiddenType := &model.ProductType{ProductID: hidden.ID, Volume: "30ml", Price: 80, Stock: 10}
	require.NoError(t, env.db.Create(hiddenType).Error)
	env.seedOrderWith(t, user.ID, model.OrderStatusCompleted, hiddenType, 5)

	items, err := svc.BestSelling(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSummary_TotalsAcrossAllProducts(t *testing.T) {
	svc, env := newStatisticsService(t)
	ctx := context.Background()
	user := env.seedUser(t, "buyer@example.com", model.RoleCustomer)
	ptA := env.seedProductType(t, 100, 50)
	ptB := env.seedProductType(t, 50, 50)

	env.seedOrderWith(t, user.ID, model.OrderStatusCompleted, ptA, 2)
	env.seedOrderWith(t, user.ID, model.OrderStatusConfirmed, ptB, 3)

	// top 非法值退回默认 5
	summary, err := svc.Summary(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalProducts)
	assert.Equal(t, int64(2), summary.TotalActiveProducts)
	assert.Equal(t, int64(5), summary.TotalSoldItems)
	assert.Equal(t, 350.0, summary.TotalRevenue)
	require.Len(t, summary.BestSelling, 2)
	assert.Equal(t, int64(3), summary.BestSelling[0].TotalSold)
}

func TestDashboard_RevenueOnlyCountsCompleted(t *testing.T) {
	svc, env := newStatisticsService(t)
	ctx := context.Background()
	buyer := env.seedUser(t, "buyer@example.com", model.RoleCustomer)
	env.seedUser(t, "other@example.com", model.RoleCustomer)
	env.seedUser(t, "admin@example.com", model.RoleAdmin)
	pt := env.seedProductType(t, 100, 50)

	env.seedOrderWith(t, buyer.ID, model.OrderStatusCompleted, pt, 1)
	backdated := env.seedOrderWith(t, buyer.ID, model.OrderStatusCompleted, pt, 2)
	env.backdateOrder(t, backdated.ID, 48*time.Hour)
	env.seedOrderWith(t, buyer.ID, model.OrderStatusPending, pt, 1)
	env.seedOrderWith(t, buyer.ID, model.OrderStatusCancelled, pt, 1)

	stats, err := svc.Dashboard(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 300.0, stats.TotalRevenue)
	assert.Equal(t, int64(4), stats.TotalOrders)
	// 管理员不计入客户数
	assert.Equal(t, int64(2), stats.TotalCustomers)
	assert.Equal(t, int64(1), stats.TotalProducts)

	require.Len(t, stats.DailyRevenue, 7)
	today := time.Now().Format(dailyRevenueDateLayout)
	twoDaysAgo := time.Now().AddDate(0, 0, -2).Format(dailyRevenueDateLayout)
	byDate := make(map[string]float64, len(stats.DailyRevenue))
	for _, d := range stats.DailyRevenue {
		byDate[d.Date] = d.Revenue
	}
	assert.Equal(t, 100.0, byDate[today])
	assert.Equal(t, 200.0, byDate[twoDaysAgo])
	// 无订单的日期补零而不是缺项
	assert.Equal(t, 0.0, byDate[time.Now().AddDate(0, 0, -1).Format(dailyRevenueDateLayout)])
}

func TestDashboard_ClampsDays(t *testing.T) {
	svc, _ := newStatisticsService(t)
	stats, err := svc.Dashboard(context.Background(), 99)
	require.NoError(t, err)
	assert.Len(t, stats.DailyRevenue, 7)

	stats, err = svc.Dashboard(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, stats.DailyRevenue, 1)
}
