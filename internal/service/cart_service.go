package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/repository"
)

// CartService 购物车服务
type CartService struct {
	repo   repository.CartRepository
	ptRepo repository.ProductTypeRepository
}

func NewCartService(repo repository.CartRepository, ptRepo repository.ProductTypeRepository) *CartService {
	return &CartService{repo: repo, ptRepo: ptRepo}
}

// Get 获取购物车（含变体信息）
func (s *CartService) Get(ctx context.Context, userID string) (*model.Cart, error) {
	return s.repo.GetOrCreate(ctx, userID)
}

// SetItem 添加/更新条目。数量为快照值而非增量；条目数量上限由库存校验兜底在下单时执行。
func (s *CartService) SetItem(ctx context.Context, userID, productTypeID string, number int) error {
	if number <= 0 {
		return fmt.Errorf("invalid quantity %d", number)
	}
	if _, err := s.ptRepo.GetByID(ctx, productTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product type %s: %w", productTypeID, ErrProductTypeNotFound)
		}
		return err
	}
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.UpsertItem(ctx, cart.ID, productTypeID, number)
}

// RemoveItem 移除条目
func (s *CartService) RemoveItem(ctx context.Context, userID, productTypeID string) error {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, cart.ID, productTypeID)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, userID string) error {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Clear(ctx, cart.ID)
}
