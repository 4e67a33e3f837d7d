package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	repo   repository.WishlistRepository
	ptRepo repository.ProductTypeRepository
}

func NewWishlistService(repo repository.WishlistRepository, ptRepo repository.ProductTypeRepository) *WishlistService {
	return &WishlistService{repo: repo, ptRepo: ptRepo}
}

func (s *WishlistService) Get(ctx context.Context, userID string) (*model.Wishlist, error) {
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *WishlistService) AddItem(ctx context.Context, userID, productTypeID string) error {
	if _, err := s.ptRepo.GetByID(ctx, productTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product type %s: %w", productTypeID, ErrProductTypeNotFound)
		}
		return err
	}
	wl, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.AddItem(ctx, wl.ID, productTypeID)
}

func (s *WishlistService) RemoveItem(ctx context.Context, userID, productTypeID string) error {
	wl, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, wl.ID, productTypeID)
}
