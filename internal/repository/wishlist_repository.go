package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/mall-api/internal/model"
)

// WishlistRepository 心愿单仓储
type WishlistRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*model.Wishlist, error)
	AddItem(ctx context.Context, wishlistID, productTypeID string) error
	RemoveItem(ctx context.Context, wishlistID, productTypeID string) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository { return &wishlistRepository{db: db} }

func (r *wishlistRepository) GetOrCreate(ctx context.Context, userID string) (*model.Wishlist, error) {
	var wl model.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.ProductType").
		Preload("Items.ProductType.Product").
		Where("user_id = ?", userID).
		First(&wl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wl = model.Wishlist{UserID: userID}
		if err := r.db.WithContext(ctx).Create(&wl).Error; err != nil {
			return nil, err
		}
		return &wl, nil
	}
	if err != nil {
		return nil, err
	}
	return &wl, nil
}

func (r *wishlistRepository) AddItem(ctx context.Context, wishlistID, productTypeID string) error {
	item := &model.WishlistItem{WishlistID: wishlistID, ProductTypeID: productTypeID}
	// 幂等：重复收藏不报错
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(item).Error
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, wishlistID, productTypeID string) error {
	return r.db.WithContext(ctx).
		Where("wishlist_id = ? AND product_type_id = ?", wishlistID, productTypeID).
		Delete(&model.WishlistItem{}).Error
}
