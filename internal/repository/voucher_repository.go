package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
)

// VoucherRepository 优惠券仓储
type VoucherRepository interface {
	GetByID(ctx context.Context, id string) (*model.Voucher, error)
	GetByCode(ctx context.Context, code string) (*model.Voucher, error)
	List(ctx context.Context, skip, limit int) ([]*model.Voucher, int64, error)
	Create(ctx context.Context, voucher *model.Voucher) error
	Update(ctx context.Context, voucher *model.Voucher) error
	SoftDelete(ctx context.Context, id string, deletedBy *string) error

	// ConsumeOne 条件扣减可用次数：quantity > 0 时才生效，返回是否命中
	ConsumeOne(ctx context.Context, tx *gorm.DB, id string) (bool, error)
}

type voucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) VoucherRepository { return &voucherRepository{db: db} }

func (r *voucherRepository) GetByID(ctx context.Context, id string) (*model.Voucher, error) {
	var v model.Voucher
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*model.Voucher, error) {
	var v model.Voucher
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *voucherRepository) List(ctx context.Context, skip, limit int) ([]*model.Voucher, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Voucher{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 100
	}
	var vouchers []*model.Voucher
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&vouchers).Error
	return vouchers, total, err
}

func (r *voucherRepository) Create(ctx context.Context, voucher *model.Voucher) error {
	return r.db.WithContext(ctx).Create(voucher).Error
}

func (r *voucherRepository) Update(ctx context.Context, voucher *model.Voucher) error {
	return r.db.WithContext(ctx).Save(voucher).Error
}

func (r *voucherRepository) SoftDelete(ctx context.Context, id string, deletedBy *string) error {
	if deletedBy != nil {
		if err := r.db.WithContext(ctx).
			Model(&model.Voucher{}).
			Where("id = ?", id).
			UpdateColumn("deleted_by", *deletedBy).Error; err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Voucher{}).Error
}

func (r *voucherRepository) ConsumeOne(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&model.Voucher{}).
		Where("id = ? AND quantity > 0", id).
		UpdateColumn("quantity", gorm.Expr("quantity - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
