package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/api"
	"github.com/d60-Lab/mall-api/internal/api/handler"
	"github.com/d60-Lab/mall-api/internal/config"
	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/notification"
	"github.com/d60-Lab/mall-api/internal/repository"
	"github.com/d60-Lab/mall-api/internal/service"
	"github.com/d60-Lab/mall-api/pkg/logger"
	"github.com/d60-Lab/mall-api/pkg/tracing"
)

// @title Mall API
// @version 1.0
// @description CRUD 电商后端：目录 / 购物车 / 心愿单 / 优惠券 / 订单 / 通知
// @BasePath /api/v1
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

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Trace.Enabled {
		shutdown, err := tracing.Init(ctx, "mall-api", cfg.Trace.Endpoint)
		if err != nil {
			logger.Warn("tracing init failed", zap.Error(err))
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		logger.Error("open database", zap.Error(err))
		os.Exit(1)
	}
	if err := migrate(db); err != nil {
		logger.Error("migrate database", zap.Error(err))
		os.Exit(1)
	}

	cache := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := cache.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, product cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		cache = nil
	}

	// 仓储
	orderRepo := repository.NewOrderRepository(db)
	ptRepo := repository.NewProductTypeRepository(db)
	productRepo := repository.NewProductRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	userRepo := repository.NewUserRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	cartRepo := repository.NewCartRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	addressRepo := repository.NewAddressRepository(db)

	// 服务
	hub := notification.NewHub()
	notifier := service.NewNotificationService(notificationRepo, userRepo, hub)
	ledger := service.NewStockLedger(ptRepo)
	productSvc := service.NewProductService(productRepo, ptRepo, cache)
	addressSvc := service.NewAddressService(addressRepo)
	checkoutSvc := service.NewCheckoutService(db, orderRepo, paymentRepo, ledger, productSvc, cfg.Payment.TimeoutMinutes)
	orderSvc := service.NewOrderService(db, orderRepo, ptRepo, voucherRepo, userRepo, paymentRepo, ledger, checkoutSvc, notifier, addressSvc, productSvc)
	authSvc := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	cartSvc := service.NewCartService(cartRepo, ptRepo)
	wishlistSvc := service.NewWishlistService(wishlistRepo, ptRepo)
	voucherSvc := service.NewVoucherService(voucherRepo)
	statsSvc := service.NewStatisticsService(repository.NewStatisticsRepository(db))

	h := handler.New(authSvc, orderSvc, productSvc, cartSvc, wishlistSvc, voucherSvc, notifier, addressSvc, statsSvc)
	router := api.NewRouter(cfg, h, authSvc)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
	default:
		return gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.ProductType{},
		&model.Voucher{},
		&model.Address{},
		&model.Order{},
		&model.OrderDetail{},
		&model.Payment{},
		&model.Cart{},
		&model.CartItem{},
		&model.Wishlist{},
		&model.WishlistItem{},
		&model.Notification{},
	)
}
