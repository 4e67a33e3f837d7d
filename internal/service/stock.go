package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/repository"
)

// StockLedger 库存账本：订单行项目的扣减与恢复。
// 所有变更都在调用方事务内通过条件更新执行，任一行不足则整体回滚，
// 不会留下部分扣减。
type StockLedger struct {
	ptRepo repository.ProductTypeRepository
}

func NewStockLedger(ptRepo repository.ProductTypeRepository) *StockLedger {
	return &StockLedger{ptRepo: ptRepo}
}

// Reserve 按行项目扣减库存。条件更新未命中说明库存不足（或变体不存在），
// 返回 *StockUnavailableError 并由调用方回滚整个事务。
func (l *StockLedger) Reserve(ctx context.Context, tx *gorm.DB, details []model.OrderDetail) error {
	for _, d := range details {
		ok, err := l.ptRepo.DecrementStock(ctx, tx, d.ProductTypeID, d.Number)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if !ok {
			available, err := l.availableStock(ctx, tx, d.ProductTypeID)
			if err != nil {
				return err
			}
			return &StockUnavailableError{
				ProductTypeID: d.ProductTypeID,
				Requested:     d.Number,
				Available:     available,
			}
		}
	}
	return nil
}

// Restore 按行项目恢复库存。幂等性由调用方保证：只有把订单条件更新到
// cancelled 成功（RowsAffected > 0）的一方才调用本方法，已取消的订单不会二次恢复。
func (l *StockLedger) Restore(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	for _, d := range order.Details {
		if err := l.ptRepo.IncrementStock(ctx, tx, d.ProductTypeID, d.Number); err != nil {
			return fmt.Errorf("restore stock: %w", err)
		}
	}
	return nil
}

func (l *StockLedger) availableStock(ctx context.Context, tx *gorm.DB, productTypeID string) (int, error) {
	var pt model.ProductType
	err := tx.WithContext(ctx).Where("id = ?", productTypeID).First(&pt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("product type %s: %w", productTypeID, ErrProductTypeNotFound)
	}
	if err != nil {
		return 0, err
	}
	return pt.Stock, nil
}
