package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/repository"
	"github.com/d60-Lab/mall-api/pkg/logger"
)

const productTypeCacheTTL = 5 * time.Minute

// TypeCacheInvalidator 变体缓存失效入口。订单扣减/恢复库存提交后调用，
// 避免目录在 TTL 内继续提供旧库存。
type TypeCacheInvalidator interface {
	InvalidateTypes(ctx context.Context, ids ...string)
}

// ProductService 商品目录服务，变体详情走 cache-aside 缓存。
// 订单扣减/恢复库存后调用 InvalidateTypes 使缓存失效。
type ProductService struct {
	repo   repository.ProductRepository
	ptRepo repository.ProductTypeRepository
	cache  *redis.Client
}

func NewProductService(repo repository.ProductRepository, ptRepo repository.ProductTypeRepository, cache *redis.Client) *ProductService {
	return &ProductService{repo: repo, ptRepo: ptRepo, cache: cache}
}

// List 商品列表
func (s *ProductService) List(ctx context.Context, keyword string, skip, limit int) ([]*model.Product, int64, error) {
	return s.repo.List(ctx, keyword, skip, limit)
}

// Get 商品详情
func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %s: %w", id, ErrProductTypeNotFound)
	}
	return p, err
}

// GetType 变体详情：先查缓存，未命中回源并写回
func (s *ProductService) GetType(ctx context.Context, id string) (*model.ProductType, error) {
	key := productTypeCacheKey(id)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var pt model.ProductType
			if uErr := json.Unmarshal(data, &pt); uErr == nil {
				return &pt, nil
			}
		}
	}

	pt, err := s.ptRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product type %s: %w", id, ErrProductTypeNotFound)
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(pt); err == nil {
			if err := s.cache.Set(ctx, key, payload, productTypeCacheTTL).Err(); err != nil {
				logger.Warn("product type cache set failed", zap.String("id", id), zap.Error(err))
			}
		}
	}
	return pt, nil
}

// Create 新建商品（管理端）
func (s *ProductService) Create(ctx context.Context, product *model.Product, createdBy string) error {
	product.CreatedBy = &createdBy
	return s.repo.Create(ctx, product)
}

// Update 更新商品（管理端），变体有变动时使缓存失效
func (s *ProductService) Update(ctx context.Context, product *model.Product, updatedBy string) error {
	product.UpdatedBy = &updatedBy
	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}
	ids := make([]string, len(product.Types))
	for i, pt := range product.Types {
		ids[i] = pt.ID
	}
	s.InvalidateTypes(ctx, ids...)
	return nil
}

// Delete 下架商品（软删除，管理端）
func (s *ProductService) Delete(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	ids := make([]string, len(p.Types))
	for i, pt := range p.Types {
		ids[i] = pt.ID
	}
	s.InvalidateTypes(ctx, ids...)
	return nil
}

// InvalidateTypes 库存变动后删除变体缓存
func (s *ProductService) InvalidateTypes(ctx context.Context, ids ...string) {
	if s.cache == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productTypeCacheKey(id)
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("product type cache invalidate failed", zap.Strings("ids", ids), zap.Error(err))
	}
}

func productTypeCacheKey(id string) string {
	return "pt:" + id
}
