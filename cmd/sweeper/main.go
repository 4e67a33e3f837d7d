// sweeper 主动扫描过期未支付的 SePay 订单并取消。
// 懒检查已覆盖正确性，本工具只为及时性，按需由 cron 调度。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/config"
	"github.com/d60-Lab/mall-api/internal/repository"
	"github.com/d60-Lab/mall-api/internal/service"
	"github.com/d60-Lab/mall-api/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Server.Mode); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var db *gorm.DB
	switch cfg.Database.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{})
	default:
		db, err = gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	}
	if err != nil {
		logger.Error("open database", zap.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cache := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := cache.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, cache invalidation skipped", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		cache = nil
	}

	orderRepo := repository.NewOrderRepository(db)
	ptRepo := repository.NewProductTypeRepository(db)
	productRepo := repository.NewProductRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	ledger := service.NewStockLedger(ptRepo)
	productSvc := service.NewProductService(productRepo, ptRepo, cache)
	checkout := service.NewCheckoutService(db, orderRepo, paymentRepo, ledger, productSvc, cfg.Payment.TimeoutMinutes)

	start := time.Now()
	cancelled, err := checkout.ExpirePendingPayments(ctx)
	if err != nil {
		logger.Error("expire sweep failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("expire sweep done",
		zap.Int("cancelled", cancelled),
		zap.Duration("elapsed", time.Since(start)))
}
