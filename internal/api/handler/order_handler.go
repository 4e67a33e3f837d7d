package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mall-api/internal/api/middleware"
	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/service"
	"github.com/d60-Lab/mall-api/pkg/response"
)

type orderItemRequest struct {
	ProductTypeID string `json:"product_type_id" binding:"required"`
	Number        int    `json:"number" binding:"required,gt=0"`
}

type createOrderRequest struct {
	PaymentMethod string             `json:"payment_method" binding:"required,oneof=SEPAY COD"`
	Note          string             `json:"note"`
	AddressID     *string            `json:"address_id"`
	VoucherCode   string             `json:"voucher_code"`
	Items         []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type orderDetailResponse struct {
	*model.Order
	PaymentWindow *service.PaymentWindow `json:"payment_window,omitempty"`
}

// CreateOrder 下单
// @Summary 创建订单
// @Tags 订单
// @Accept json
// @Produce json
// @Param request body createOrderRequest true "下单信息"
// @Success 201 {object} response.Response{data=model.Order}
// @Failure 400 {object} response.Response
// @Router /api/v1/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	items := make([]service.OrderItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = service.OrderItemInput{ProductTypeID: it.ProductTypeID, Number: it.Number}
	}
	// user_id 取自 token，不信任请求体
	order, err := h.orderSvc.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		UserID:        c.GetString(middleware.ContextUserID),
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
		AddressID:     req.AddressID,
		VoucherCode:   req.VoucherCode,
		Items:         items,
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.Created(c, order)
}

// GetOrderDetail 订单详情（懒检查支付过期，响应反映补偿后的状态）
// @Summary 订单详情
// @Tags 订单
// @Param order_id path string true "订单ID"
// @Success 200 {object} response.Response{data=orderDetailResponse}
// @Failure 404 {object} response.Response
// @Router /api/v1/orders/{order_id} [get]
func (h *Handler) GetOrderDetail(c *gin.Context) {
	orderID := c.Param("order_id")
	// 管理员可查全部，客户只能查自己的
	scopeUserID := c.GetString(middleware.ContextUserID)
	if c.GetString(middleware.ContextRole) == model.RoleAdmin {
		scopeUserID = ""
	}
	order, window, err := h.orderSvc.GetOrderDetail(c.Request.Context(), orderID, scopeUserID)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, orderDetailResponse{Order: order, PaymentWindow: window})
}

// MyOrders 当前用户订单历史
// @Summary 我的订单
// @Tags 订单
// @Param status query string false "状态过滤"
// @Param sort_order query string false "时间排序 asc/desc" default(desc)
// @Param skip query int false "跳过数量" default(0)
// @Param limit query int false "返回数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/orders/my-orders [get]
func (h *Handler) MyOrders(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	orders, total, err := h.orderSvc.ListUserOrders(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		model.OrderStatus(c.Query("status")),
		c.DefaultQuery("sort_order", "desc"),
		skip, limit,
	)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"items": orders, "total": total, "skip": skip, "limit": limit})
}

// AdminListOrders 管理端订单列表
// @Summary 全部订单（管理员）
// @Tags 订单
// @Param status query string false "状态过滤"
// @Param sort_order query string false "时间排序 asc/desc" default(desc)
// @Param skip query int false "跳过数量" default(0)
// @Param limit query int false "返回数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/orders/admin/all [get]
func (h *Handler) AdminListOrders(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	orders, total, err := h.orderSvc.ListAllOrders(
		c.Request.Context(),
		model.OrderStatus(c.Query("status")),
		c.DefaultQuery("sort_order", "desc"),
		skip, limit,
	)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"items": orders, "total": total, "skip": skip, "limit": limit})
}

// UpdateOrderStatus 管理端状态变更（守卫 + 状态机校验）
// @Summary 更新订单状态（管理员）
// @Tags 订单
// @Param order_id path string true "订单ID"
// @Param new_status query string true "新状态"
// @Success 200 {object} response.Response{data=model.Order}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/orders/{order_id}/status [patch]
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	newStatus := model.OrderStatus(c.Query("new_status"))
	if newStatus == "" {
		response.BadRequest(c, "new_status is required")
		return
	}
	order, err := h.orderSvc.UpdateOrderStatus(
		c.Request.Context(),
		c.Param("order_id"),
		newStatus,
		c.GetString(middleware.ContextUserID),
	)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.SuccessMsg(c, "order status updated: "+string(newStatus), order)
}

// CancelMyOrder 客户取消自己的订单（仅状态机允许取消的状态）
// @Summary 取消订单
// @Tags 订单
// @Param order_id path string true "订单ID"
// @Success 200 {object} response.Response{data=model.Order}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/orders/{order_id}/cancel [post]
func (h *Handler) CancelMyOrder(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	// 先做所有者校验，他人订单与不存在同样返回 404
	if _, _, err := h.orderSvc.GetOrderDetail(c.Request.Context(), c.Param("order_id"), userID); err != nil {
		writeOrderError(c, err)
		return
	}
	order, err := h.orderSvc.UpdateOrderStatus(
		c.Request.Context(),
		c.Param("order_id"),
		model.OrderStatusCancelled,
		userID,
	)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.SuccessMsg(c, "order cancelled", order)
}

type confirmPaymentRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
}

// ConfirmPayment 支付网关回调：支付记录置 success
// @Summary 支付确认回调
// @Tags 订单
// @Param order_id path string true "订单ID"
// @Param request body confirmPaymentRequest true "交易信息"
// @Success 200 {object} response.Response{data=model.Order}
// @Router /api/v1/orders/{order_id}/payment/confirm [post]
func (h *Handler) ConfirmPayment(c *gin.Context) {
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	order, err := h.orderSvc.ConfirmPayment(c.Request.Context(), c.Param("order_id"), req.TransactionID)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	response.Success(c, order)
}
