package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
)

// ProductTypeRepository 商品变体仓储。库存扣减/恢复必须用条件更新保证
// 并发下单时不会超卖、stock 永不为负。
type ProductTypeRepository interface {
	GetByID(ctx context.Context, id string) (*model.ProductType, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.ProductType, error)

	// DecrementStock 条件扣减：stock >= number 时才生效，返回是否命中
	DecrementStock(ctx context.Context, tx *gorm.DB, id string, number int) (bool, error)

	// IncrementStock 恢复库存（取消/支付过期补偿）
	IncrementStock(ctx context.Context, tx *gorm.DB, id string, number int) error
}

type productTypeRepository struct {
	db *gorm.DB
}

func NewProductTypeRepository(db *gorm.DB) ProductTypeRepository {
	return &productTypeRepository{db: db}
}

func (r *productTypeRepository) GetByID(ctx context.Context, id string) (*model.ProductType, error) {
	var pt model.ProductType
	err := r.db.WithContext(ctx).Preload("Product").Where("id = ?", id).First(&pt).Error
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

func (r *productTypeRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.ProductType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var pts []*model.ProductType
	err := r.db.WithContext(ctx).Preload("Product").Where("id IN ?", ids).Find(&pts).Error
	return pts, err
}

func (r *productTypeRepository) DecrementStock(ctx context.Context, tx *gorm.DB, id string, number int) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&model.ProductType{}).
		Where("id = ? AND stock >= ?", id, number).
		UpdateColumn("stock", gorm.Expr("stock - ?", number))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productTypeRepository) IncrementStock(ctx context.Context, tx *gorm.DB, id string, number int) error {
	return tx.WithContext(ctx).
		Model(&model.ProductType{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", number)).Error
}
