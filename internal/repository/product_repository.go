package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
)

// ProductRepository 商品仓储
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, keyword string, skip, limit int) ([]*model.Product, int64, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	SoftDelete(ctx context.Context, id string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepository{db: db} }

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Types").Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, keyword string, skip, limit int) ([]*model.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{}).Where("is_active = ?", true)
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 20
	}
	var products []*model.Product
	err := query.Preload("Types").Order("created_at DESC").Offset(skip).Limit(limit).Find(&products).Error
	return products, total, err
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{}).Error
}
