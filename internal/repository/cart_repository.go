package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/mall-api/internal/model"
)

// CartRepository 购物车仓储
type CartRepository interface {
	// GetOrCreate 获取用户购物车，不存在则创建
	GetOrCreate(ctx context.Context, userID string) (*model.Cart, error)
	UpsertItem(ctx context.Context, cartID, productTypeID string, number int) error
	RemoveItem(ctx context.Context, cartID, productTypeID string) error
	Clear(ctx context.Context, cartID string) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository { return &cartRepository{db: db} }

func (r *cartRepository) GetOrCreate(ctx context.Context, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.ProductType").
		Preload("Items.ProductType.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = model.Cart{UserID: userID}
		if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) UpsertItem(ctx context.Context, cartID, productTypeID string, number int) error {
	item := &model.CartItem{CartID: cartID, ProductTypeID: productTypeID, Number: number}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_type_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"number"}),
		}).
		Create(item).Error
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, productTypeID string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_type_id = ?", cartID, productTypeID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepository) Clear(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}
