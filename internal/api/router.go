package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/mall-api/docs"
	"github.com/d60-Lab/mall-api/internal/api/handler"
	"github.com/d60-Lab/mall-api/internal/api/middleware"
	"github.com/d60-Lab/mall-api/internal/config"
	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/service"
)

// NewRouter 装配路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler, authSvc *service.AuthService) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	r.Use(gin.Logger(), gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(otelgin.Middleware("mall-api"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	v1 := r.Group("/api/v1")

	// 公开路由
	v1.POST("/auth/register", h.Register)
	v1.POST("/auth/login", h.Login)
	v1.GET("/products", h.ListProducts)
	v1.GET("/products/:product_id", h.GetProduct)
	v1.GET("/product-types/:type_id", h.GetProductType)
	v1.GET("/vouchers/:code", h.GetVoucherByCode)
	// 支付网关回调（生产环境由网关签名校验守护）
	v1.POST("/orders/:order_id/payment/confirm", h.ConfirmPayment)

	// 需登录
	authed := v1.Group("", middleware.Auth(authSvc))
	{
		authed.POST("/orders", h.CreateOrder)
		authed.GET("/orders/my-orders", h.MyOrders)
		authed.GET("/orders/:order_id", h.GetOrderDetail)
		authed.POST("/orders/:order_id/cancel", h.CancelMyOrder)

		authed.GET("/cart", h.GetCart)
		authed.PUT("/cart/items", h.SetCartItem)
		authed.DELETE("/cart/items/:type_id", h.RemoveCartItem)
		authed.DELETE("/cart", h.ClearCart)

		authed.GET("/wishlist", h.GetWishlist)
		authed.POST("/wishlist/items/:type_id", h.AddWishlistItem)
		authed.DELETE("/wishlist/items/:type_id", h.RemoveWishlistItem)

		authed.GET("/addresses", h.MyAddresses)
		authed.POST("/addresses", h.CreateAddress)
		authed.GET("/addresses/:address_id", h.GetAddress)

		authed.GET("/notifications", h.MyNotifications)
		authed.PATCH("/notifications/:notification_id/read", h.MarkNotificationRead)
	}

	// 管理端
	admin := v1.Group("", middleware.Auth(authSvc), middleware.RequireRoles(model.RoleAdmin))
	{
		admin.GET("/orders/admin/all", h.AdminListOrders)
		admin.PATCH("/orders/:order_id/status", h.UpdateOrderStatus)

		admin.POST("/products", h.CreateProduct)
		admin.PUT("/products/:product_id", h.UpdateProduct)
		admin.DELETE("/products/:product_id", h.DeleteProduct)

		admin.GET("/statistics/products/best-selling", h.BestSellingProducts)
		admin.GET("/statistics/products/summary", h.ProductStatisticsSummary)
		admin.GET("/statistics/dashboard", h.DashboardStatistics)

		admin.GET("/vouchers", h.ListVouchers)
		admin.POST("/vouchers", h.CreateVoucher)
		admin.PUT("/vouchers/:voucher_id", h.UpdateVoucher)
		admin.DELETE("/vouchers/:voucher_id", h.DeleteVoucher)
	}

	return r
}
