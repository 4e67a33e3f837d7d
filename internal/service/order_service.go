package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/repository"
	"github.com/d60-Lab/mall-api/pkg/logger"
)

// OrderItemInput 下单行项目
type OrderItemInput struct {
	ProductTypeID string
	Number        int
}

// CreateOrderInput 下单输入。UserID 由认证层填充，不信任请求体。
type CreateOrderInput struct {
	UserID        string
	PaymentMethod string
	Note          string
	AddressID     *string
	VoucherCode   string
	Items         []OrderItemInput
}

// PaymentWindow 待支付 SePay 订单的剩余支付窗口
type PaymentWindow struct {
	ExpiresAt        time.Time `json:"expires_at"`
	RemainingSeconds int64     `json:"remaining_seconds"`
}

// OrderService 订单聚合服务：组合状态机、库存账本与支付窗口引擎，
// 每个变更操作都是一个原子事务。
type OrderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	ptRepo      repository.ProductTypeRepository
	voucherRepo repository.VoucherRepository
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	ledger      *StockLedger
	checkout    *CheckoutService
	notifier    Notifier
	addresses   *AddressService
	typeCache   TypeCacheInvalidator
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	ptRepo repository.ProductTypeRepository,
	voucherRepo repository.VoucherRepository,
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	ledger *StockLedger,
	checkout *CheckoutService,
	notifier Notifier,
	addresses *AddressService,
	typeCache TypeCacheInvalidator,
) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		ptRepo:      ptRepo,
		voucherRepo: voucherRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		ledger:      ledger,
		checkout:    checkout,
		notifier:    notifier,
		addresses:   addresses,
		typeCache:   typeCache,
	}
}

// CreateOrder 下单。单事务内：校验变体、条件扣库存、算金额、
// 校验并核销优惠券、写入订单 + 行项目 + 初始支付记录。
// 任一步失败整体回滚，不残留部分订单。
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("order must have at least one item")
	}
	// 收货地址必须属于下单用户
	if in.AddressID != nil && s.addresses != nil {
		if _, err := s.addresses.Get(ctx, *in.AddressID, in.UserID); err != nil {
			return nil, err
		}
	}

	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]string, 0, len(in.Items))
		for _, it := range in.Items {
			ids = append(ids, it.ProductTypeID)
		}
		pts, err := s.ptRepo.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		ptMap := make(map[string]*model.ProductType, len(pts))
		for _, pt := range pts {
			ptMap[pt.ID] = pt
		}

		details := make([]model.OrderDetail, 0, len(in.Items))
		totalAmount := 0.0
		for _, it := range in.Items {
			pt, ok := ptMap[it.ProductTypeID]
			if !ok {
				return fmt.Errorf("product type %s: %w", it.ProductTypeID, ErrProductTypeNotFound)
			}
			if it.Number <= 0 {
				return fmt.Errorf("invalid quantity %d for product type %s", it.Number, it.ProductTypeID)
			}
			// 价格快照取下单时的变体价格
			details = append(details, model.OrderDetail{
				ProductTypeID: pt.ID,
				Price:         pt.Price,
				Number:        it.Number,
			})
			totalAmount += pt.Price * float64(it.Number)
		}

		if err := s.ledger.Reserve(ctx, tx, details); err != nil {
			return err
		}

		discountAmount := 0.0
		var voucherID *string
		if in.VoucherCode != "" {
			voucher, err := s.voucherRepo.GetByCode(ctx, in.VoucherCode)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("code %s: %w", in.VoucherCode, ErrVoucherInvalid)
			}
			if err != nil {
				return err
			}
			discountAmount, err = ComputeDiscount(voucher, totalAmount)
			if err != nil {
				return err
			}
			ok, err := s.voucherRepo.ConsumeOne(ctx, tx, voucher.ID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("code %s exhausted: %w", in.VoucherCode, ErrVoucherInvalid)
			}
			voucherID = &voucher.ID
		}

		finalAmount := totalAmount - discountAmount
		if finalAmount < 0 {
			discountAmount = totalAmount
			finalAmount = 0
		}

		userID := in.UserID
		order = &model.Order{
			AuditBase:      model.AuditBase{CreatedBy: &userID},
			UserID:         in.UserID,
			Status:         model.OrderStatusPending,
			PaymentMethod:  in.PaymentMethod,
			TotalAmount:    totalAmount,
			DiscountAmount: discountAmount,
			FinalAmount:    finalAmount,
			Note:           in.Note,
			AddressID:      in.AddressID,
			VoucherID:      voucherID,
			Details:        details,
			Payment: &model.Payment{
				Method: in.PaymentMethod,
				Status: model.PaymentStatusPending,
				Amount: finalAmount,
			},
		}
		return s.orderRepo.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTypeCache(ctx, order.Details)
	s.notifyCreated(ctx, order)
	return order, nil
}

// GetOrderDetail 查询订单详情。userID 非空时限定为订单所有者，
// 他人订单一律返回 ErrOrderNotFound（不暴露存在性）。
// 读取时懒检查支付过期：已过期的 pending SePay 订单在本次调用内完成
// 取消 + 支付取消 + 库存恢复，响应反映取消后的状态。
func (s *OrderService) GetOrderDetail(ctx context.Context, orderID, userID string) (*model.Order, *PaymentWindow, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if userID != "" && order.UserID != userID {
		return nil, nil, ErrOrderNotFound
	}

	if s.checkout.IsPaymentExpired(order) {
		order, err = s.checkout.ResolveExpiredPayment(ctx, order)
		if err != nil {
			return nil, nil, err
		}
		return order, nil, nil
	}

	var window *PaymentWindow
	if order.Status == model.OrderStatusPending && order.PaymentMethod == model.PaymentMethodSepay {
		window = &PaymentWindow{
			ExpiresAt:        s.checkout.PaymentExpiresAt(order),
			RemainingSeconds: int64(s.checkout.PaymentRemainingTime(order).Seconds()),
		}
	}
	return order, window, nil
}

// UpdateOrderStatus 管理端状态变更：先走支付确认守卫，再走状态机校验，
// 以条件更新提交（输掉并发竞争时返回 ErrOrderStateChanged）。
// 本次调用落入 cancelled 时在同一事务内恢复库存。
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, newStatus model.OrderStatus, updatedBy string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := RequiresPaymentConfirmation(order, newStatus); err != nil {
		return nil, err
	}
	if err := ValidateTransition(order.Status, newStatus); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var by *string
		if updatedBy != "" {
			by = &updatedBy
		}
		ok, err := s.orderRepo.UpdateStatusIf(ctx, tx, order.ID, order.Status, newStatus, by)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOrderStateChanged
		}
		if newStatus == model.OrderStatusCancelled {
			if order.Payment != nil && order.Payment.Status == model.PaymentStatusPending {
				if err := s.paymentRepo.UpdateStatus(ctx, tx, order.Payment.ID, model.PaymentStatusCancelled); err != nil {
					return err
				}
			}
			return s.ledger.Restore(ctx, tx, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if newStatus == model.OrderStatusCancelled {
		s.invalidateTypeCache(ctx, order.Details)
	}

	updated, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.OrderStatusChanged(ctx, updated, updatedBy)
	}
	return updated, nil
}

// ConfirmPayment 支付回调确认：pending 订单的 pending 支付记录置 success 并写入交易号。
// 只改支付状态，订单 pending -> confirmed 仍由管理端通过状态机推进。
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID, transactionID string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPending || order.Payment == nil ||
		order.Payment.Status != model.PaymentStatusPending {
		return nil, fmt.Errorf("order %s is not awaiting payment", orderID)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.paymentRepo.MarkSuccess(ctx, tx, order.Payment.ID, transactionID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOrderStateChanged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, orderID)
}

// ListUserOrders 用户订单历史
func (s *OrderService) ListUserOrders(ctx context.Context, userID string, status model.OrderStatus, sortOrder string, skip, limit int) ([]*model.Order, int64, error) {
	return s.orderRepo.List(ctx, repository.ListOrdersQuery{
		UserID:    userID,
		Status:    status,
		SortOrder: sortOrder,
		Skip:      skip,
		Limit:     limit,
	})
}

// ListAllOrders 管理端订单列表
func (s *OrderService) ListAllOrders(ctx context.Context, status model.OrderStatus, sortOrder string, skip, limit int) ([]*model.Order, int64, error) {
	return s.orderRepo.List(ctx, repository.ListOrdersQuery{
		Status:    status,
		SortOrder: sortOrder,
		Skip:      skip,
		Limit:     limit,
	})
}

// invalidateTypeCache 库存变更事务提交后失效涉及变体的目录缓存
func (s *OrderService) invalidateTypeCache(ctx context.Context, details []model.OrderDetail) {
	if s.typeCache == nil || len(details) == 0 {
		return
	}
	ids := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ProductTypeID)
	}
	s.typeCache.InvalidateTypes(ctx, ids...)
}

func (s *OrderService) notifyCreated(ctx context.Context, order *model.Order) {
	if s.notifier == nil {
		return
	}
	customerName := "customer"
	if user, err := s.userRepo.GetByID(ctx, order.UserID); err == nil {
		customerName = user.FullName()
	} else {
		logger.Warn("notify created: load user", zap.String("order_id", order.ID), zap.Error(err))
	}
	s.notifier.OrderCreated(ctx, order, customerName)
}
