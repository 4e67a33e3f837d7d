package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mall-api/internal/service"
	"github.com/d60-Lab/mall-api/pkg/response"
)

// Handler 聚合所有 HTTP 处理器依赖
type Handler struct {
	authSvc         *service.AuthService
	orderSvc        *service.OrderService
	productSvc      *service.ProductService
	cartSvc         *service.CartService
	wishlistSvc     *service.WishlistService
	voucherSvc      service.VoucherService
	notificationSvc *service.NotificationService
	addressSvc      *service.AddressService
	statsSvc        *service.StatisticsService
}

func New(
	authSvc *service.AuthService,
	orderSvc *service.OrderService,
	productSvc *service.ProductService,
	cartSvc *service.CartService,
	wishlistSvc *service.WishlistService,
	voucherSvc service.VoucherService,
	notificationSvc *service.NotificationService,
	addressSvc *service.AddressService,
	statsSvc *service.StatisticsService,
) *Handler {
	return &Handler{
		authSvc:         authSvc,
		orderSvc:        orderSvc,
		productSvc:      productSvc,
		cartSvc:         cartSvc,
		wishlistSvc:     wishlistSvc,
		voucherSvc:      voucherSvc,
		notificationSvc: notificationSvc,
		addressSvc:      addressSvc,
		statsSvc:        statsSvc,
	}
}

// writeOrderError 业务错误到 HTTP 状态码的映射：
// 状态机/库存/优惠券/支付守卫 -> 400，不存在/不可见 -> 404，其余 -> 500
func writeOrderError(c *gin.Context, err error) {
	var transitionErr *service.InvalidTransitionError
	var stockErr *service.StockUnavailableError
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, err.Error())
	case errors.As(err, &transitionErr),
		errors.As(err, &stockErr),
		errors.Is(err, service.ErrPaymentNotConfirmed),
		errors.Is(err, service.ErrVoucherInvalid),
		errors.Is(err, service.ErrProductTypeNotFound),
		errors.Is(err, service.ErrAddressNotFound),
		errors.Is(err, service.ErrOrderStateChanged):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
