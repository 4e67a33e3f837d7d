package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/repository"
)

var ErrAddressNotFound = errors.New("address not found")

// AddressService 收货地址簿
type AddressService struct {
	repo repository.AddressRepository
}

func NewAddressService(repo repository.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

func (s *AddressService) Create(ctx context.Context, addr *model.Address) error {
	userID := addr.UserID
	addr.CreatedBy = &userID
	return s.repo.Create(ctx, addr)
}

func (s *AddressService) ListByUser(ctx context.Context, userID string) ([]*model.Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get 按所有者查询，他人地址与不存在同样返回 ErrAddressNotFound
func (s *AddressService) Get(ctx context.Context, id, userID string) (*model.Address, error) {
	addr, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	if addr.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return addr, nil
}
