package service

import (
	"context"
	"time"

	"github.com/d60-Lab/mall-api/internal/repository"
)

const dailyRevenueDateLayout = "2006-01-02"

// ProductSummary 管理端商品概览
type ProductSummary struct {
	TotalProducts       int64                            `json:"total_products"`
	TotalActiveProducts int64                            `json:"total_active_products"`
	TotalSoldItems      int64                            `json:"total_sold_items"`
	TotalRevenue        float64                          `json:"total_revenue"`
	BestSelling         []*repository.BestSellingProduct `json:"best_selling"`
}

// DailyRevenue 单日营收，日期格式 YYYY-MM-DD
type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// DashboardStats 管理端看板。营收只计已完成订单的实付金额。
type DashboardStats struct {
	TotalRevenue   float64        `json:"total_revenue"`
	TotalOrders    int64          `json:"total_orders"`
	TotalCustomers int64          `json:"total_customers"`
	TotalProducts  int64          `json:"total_products"`
	DailyRevenue   []DailyRevenue `json:"daily_revenue"`
}

// StatisticsService 管理端统计聚合
type StatisticsService struct {
	repo repository.StatisticsRepository
}

func NewStatisticsService(repo repository.StatisticsRepository) *StatisticsService {
	return &StatisticsService{repo: repo}
}

// clampTop 榜单长度只接受 5/10/15/20
func clampTop(top, fallback int) int {
	switch top {
	case 5, 10, 15, 20:
		return top
	default:
		return fallback
	}
}

// BestSelling 畅销榜，top 非法时取默认 10
func (s *StatisticsService) BestSelling(ctx context.Context, top int) ([]*repository.BestSellingProduct, error) {
	return s.repo.BestSelling(ctx, clampTop(top, 10))
}

// Summary 商品概览，榜单默认取前 5
func (s *StatisticsService) Summary(ctx context.Context, top int) (*ProductSummary, error) {
	best, err := s.repo.BestSelling(ctx, clampTop(top, 5))
	if err != nil {
		return nil, err
	}
	total, active, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	sold, revenue, err := s.repo.SoldTotals(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductSummary{
		TotalProducts:       total,
		TotalActiveProducts: active,
		TotalSoldItems:      sold,
		TotalRevenue:        revenue,
		BestSelling:         best,
	}, nil
}

// Dashboard 看板统计，days 截取到 [1, 30]，默认 7。
// 逐日营收在服务层按本地日期分组，无订单的日期补零。
func (s *StatisticsService) Dashboard(ctx context.Context, days int) (*DashboardStats, error) {
	if days < 1 || days > 30 {
		days = 7
	}

	revenue, err := s.repo.CompletedRevenue(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}
	products, _, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	start := now.AddDate(0, 0, -(days - 1))
	startOfDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	points, err := s.repo.CompletedOrdersSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]float64, days)
	for _, p := range points {
		byDate[p.CreatedAt.Local().Format(dailyRevenueDateLayout)] += p.Amount
	}
	daily := make([]DailyRevenue, 0, days)
	for i := 0; i < days; i++ {
		date := startOfDay.AddDate(0, 0, i).Format(dailyRevenueDateLayout)
		daily = append(daily, DailyRevenue{Date: date, Revenue: byDate[date]})
	}

	return &DashboardStats{
		TotalRevenue:   revenue,
		TotalOrders:    orders,
		TotalCustomers: customers,
		TotalProducts:  products,
		DailyRevenue:   daily,
	}, nil
}
