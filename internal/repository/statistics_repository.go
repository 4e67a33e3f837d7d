package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
)

// BestSellingProduct 聚合后的畅销商品行
type BestSellingProduct struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Thumbnail    string  `json:"thumbnail"`
	TotalSold    int64   `json:"total_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

// RevenuePoint 一条已完成订单的营收记录，按天聚合在服务层完成
type RevenuePoint struct {
	CreatedAt time.Time
	Amount    float64
}

// StatisticsRepository 管理端统计查询。只读聚合，不参与事务。
type StatisticsRepository interface {
	// BestSelling 按已售件数排序的商品榜单，取消订单不计入
	BestSelling(ctx context.Context, limit int) ([]*BestSellingProduct, error)
	// SoldTotals 全部商品的已售件数与销售额，口径与 BestSelling 一致
	SoldTotals(ctx context.Context) (int64, float64, error)
	CountProducts(ctx context.Context) (total, active int64, err error)
	CountOrders(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	// CompletedRevenue 已完成订单的实付总额
	CompletedRevenue(ctx context.Context) (float64, error)
	// CompletedOrdersSince 指定时刻后的已完成订单营收记录
	CompletedOrdersSince(ctx context.Context, since time.Time) ([]RevenuePoint, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) BestSelling(ctx context.Context, limit int) ([]*BestSellingProduct, error) {
	var rows []*BestSellingProduct
	err := r.db.WithContext(ctx).
		Table("order_details od").
		Select("p.id AS product_id, p.name, p.thumbnail, "+
			"SUM(od.number) AS total_sold, SUM(od.price * od.number) AS total_revenue").
		Joins("JOIN orders o ON o.id = od.order_id AND o.deleted_at IS NULL AND o.status <> ?", model.OrderStatusCancelled).
		Joins("JOIN product_types pt ON pt.id = od.product_type_id").
		Joins("JOIN products p ON p.id = pt.product_id AND p.deleted_at IS NULL AND p.is_active = ?", true).
		Where("od.deleted_at IS NULL").
		Group("p.id, p.name, p.thumbnail").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *statisticsRepository) SoldTotals(ctx context.Context) (int64, float64, error) {
	var row struct {
		TotalSold    int64
		TotalRevenue float64
	}
	err := r.db.WithContext(ctx).
		Table("order_details od").
		Select("COALESCE(SUM(od.number), 0) AS total_sold, "+
			"COALESCE(SUM(od.price * od.number), 0) AS total_revenue").
		Joins("JOIN orders o ON o.id = od.order_id AND o.deleted_at IS NULL AND o.status <> ?", model.OrderStatusCancelled).
		Where("od.deleted_at IS NULL").
		Scan(&row).Error
	return row.TotalSold, row.TotalRevenue, err
}

func (r *statisticsRepository) CountProducts(ctx context.Context) (int64, int64, error) {
	var total, active int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_active = ?", true).Count(&active).Error
	return total, active, err
}

func (r *statisticsRepository) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&n).Error
	return n, err
}

func (r *statisticsRepository) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", model.RoleCustomer).Count(&n).Error
	return n, err
}

func (r *statisticsRepository) CompletedRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", model.OrderStatusCompleted).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&revenue).Error
	return revenue, err
}

func (r *statisticsRepository) CompletedOrdersSince(ctx context.Context, since time.Time) ([]RevenuePoint, error) {
	var points []RevenuePoint
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ? AND created_at >= ?", model.OrderStatusCompleted, since).
		Select("created_at, final_amount AS amount").
		Scan(&points).Error
	return points, err
}
