package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/repository"
)

// VoucherService 优惠券服务
type VoucherService interface {
	GetByCode(ctx context.Context, code string) (*model.Voucher, error)
	List(ctx context.Context, skip, limit int) ([]*model.Voucher, int64, error)
	Create(ctx context.Context, voucher *model.Voucher, createdBy string) error
	Update(ctx context.Context, voucher *model.Voucher, updatedBy string) error
	Delete(ctx context.Context, id, deletedBy string) error
}

type voucherService struct {
	repo repository.VoucherRepository
}

func NewVoucherService(repo repository.VoucherRepository) VoucherService {
	return &voucherService{repo: repo}
}

func (s *voucherService) GetByCode(ctx context.Context, code string) (*model.Voucher, error) {
	v, err := s.repo.GetByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("code %s: %w", code, ErrVoucherInvalid)
	}
	return v, err
}

func (s *voucherService) List(ctx context.Context, skip, limit int) ([]*model.Voucher, int64, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *voucherService) Create(ctx context.Context, voucher *model.Voucher, createdBy string) error {
	voucher.CreatedBy = &createdBy
	return s.repo.Create(ctx, voucher)
}

func (s *voucherService) Update(ctx context.Context, voucher *model.Voucher, updatedBy string) error {
	if _, err := s.repo.GetByID(ctx, voucher.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("voucher %s: %w", voucher.ID, ErrVoucherInvalid)
		}
		return err
	}
	voucher.UpdatedBy = &updatedBy
	return s.repo.Update(ctx, voucher)
}

func (s *voucherService) Delete(ctx context.Context, id, deletedBy string) error {
	return s.repo.SoftDelete(ctx, id, &deletedBy)
}

// ComputeDiscount 按订单总额计算折扣金额：
// 校验使用门槛，折扣为百分比，受 max_discount 与订单总额双重封顶。
func ComputeDiscount(v *model.Voucher, totalAmount float64) (float64, error) {
	if v.Quantity <= 0 {
		return 0, fmt.Errorf("code %s exhausted: %w", v.Code, ErrVoucherInvalid)
	}
	if v.MinOrderAmount != nil && totalAmount < *v.MinOrderAmount {
		return 0, fmt.Errorf("order amount below minimum %.2f for code %s: %w",
			*v.MinOrderAmount, v.Code, ErrVoucherInvalid)
	}
	discount := totalAmount * v.Discount / 100
	if v.MaxDiscount != nil && discount > *v.MaxDiscount {
		discount = *v.MaxDiscount
	}
	if discount > totalAmount {
		discount = totalAmount
	}
	return discount, nil
}
