package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/repository"
)

var testDBSeq atomic.Int64

// recordingNotifier 记录分发次数，校验 fire-and-forget 行为
type recordingNotifier struct {
	created       atomic.Int64
	statusChanged atomic.Int64
}

func (n *recordingNotifier) OrderCreated(ctx context.Context, order *model.Order, customerName string) {
	n.created.Add(1)
}

func (n *recordingNotifier) OrderStatusChanged(ctx context.Context, order *model.Order, updatedBy string) {
	n.statusChanged.Add(1)
}

type testEnv struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	ptRepo      repository.ProductTypeRepository
	voucherRepo repository.VoucherRepository
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	ledger      *StockLedger
	checkout    *CheckoutService
	orders      *OrderService
	products    *ProductService
	addresses   *AddressService
	notifier    *recordingNotifier
}

// newTestEnv 每个测试独立的共享缓存内存库（事务需要多连接可见同一数据）
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:mall_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
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
	))

	env := &testEnv{
		db:          db,
		orderRepo:   repository.NewOrderRepository(db),
		ptRepo:      repository.NewProductTypeRepository(db),
		voucherRepo: repository.NewVoucherRepository(db),
		userRepo:    repository.NewUserRepository(db),
		paymentRepo: repository.NewPaymentRepository(db),
		notifier:    &recordingNotifier{},
	}
	env.ledger = NewStockLedger(env.ptRepo)
	env.products = NewProductService(repository.NewProductRepository(db), env.ptRepo, nil)
	env.addresses = NewAddressService(repository.NewAddressRepository(db))
	env.checkout = NewCheckoutService(db, env.orderRepo, env.paymentRepo, env.ledger, env.products, 30)
	env.orders = NewOrderService(db, env.orderRepo, env.ptRepo, env.voucherRepo, env.userRepo, env.paymentRepo, env.ledger, env.checkout, env.notifier, env.addresses, env.products)
	return env
}

func (e *testEnv) seedUser(t *testing.T, email, role string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Password: "hash", FirstName: "Test", Role: role}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) seedProductType(t *testing.T, price float64, stock int) *model.ProductType {
	t.Helper()
	p := &model.Product{Name: "Perfume", IsActive: true}
	require.NoError(t, e.db.Create(p).Error)
	pt := &model.ProductType{ProductID: p.ID, Volume: "50ml", Price: price, Stock: stock}
	require.NoError(t, e.db.Create(pt).Error)
	return pt
}

func (e *testEnv) stockOf(t *testing.T, productTypeID string) int {
	t.Helper()
	var pt model.ProductType
	require.NoError(t, e.db.Where("id = ?", productTypeID).First(&pt).Error)
	return pt.Stock
}
