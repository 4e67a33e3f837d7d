package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mall-api/internal/api/middleware"
	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/service"
	"github.com/d60-Lab/mall-api/pkg/response"
)

type voucherRequest struct {
	Code           string   `json:"code" binding:"required"`
	Discount       float64  `json:"discount" binding:"required,gt=0,lte=100"`
	Description    string   `json:"description"`
	Quantity       int      `json:"quantity" binding:"required,gte=0"`
	MinOrderAmount *float64 `json:"min_order_amount"`
	MaxDiscount    *float64 `json:"max_discount"`
}

// GetVoucherByCode 按 code 查询优惠券
// @Summary 优惠券查询
// @Tags 优惠券
// @Param code path string true "优惠码"
// @Success 200 {object} response.Response{data=model.Voucher}
// @Failure 404 {object} response.Response
// @Router /api/v1/vouchers/{code} [get]
func (h *Handler) GetVoucherByCode(c *gin.Context) {
	v, err := h.voucherSvc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrVoucherInvalid) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, v)
}

// ListVouchers 优惠券列表（管理员）
// @Summary 优惠券列表（管理员）
// @Tags 优惠券
// @Param skip query int false "跳过数量" default(0)
// @Param limit query int false "返回数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/vouchers [get]
func (h *Handler) ListVouchers(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	vouchers, total, err := h.voucherSvc.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"items": vouchers, "total": total, "skip": skip, "limit": limit})
}

// CreateVoucher 新建优惠券（管理员）
// @Summary 新建优惠券（管理员）
// @Tags 优惠券
// @Param request body voucherRequest true "优惠券"
// @Success 201 {object} response.Response{data=model.Voucher}
// @Router /api/v1/vouchers [post]
func (h *Handler) CreateVoucher(c *gin.Context) {
	var req voucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	v := &model.Voucher{
		Code:           req.Code,
		Discount:       req.Discount,
		Description:    req.Description,
		Quantity:       req.Quantity,
		MinOrderAmount: req.MinOrderAmount,
		MaxDiscount:    req.MaxDiscount,
	}
	if err := h.voucherSvc.Create(c.Request.Context(), v, c.GetString(middleware.ContextUserID)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, v)
}

// UpdateVoucher 更新优惠券（管理员）
// @Summary 更新优惠券（管理员）
// @Tags 优惠券
// @Param voucher_id path string true "优惠券ID"
// @Param request body voucherRequest true "优惠券"
// @Success 200 {object} response.Response{data=model.Voucher}
// @Router /api/v1/vouchers/{voucher_id} [put]
func (h *Handler) UpdateVoucher(c *gin.Context) {
	var req voucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	v := &model.Voucher{
		Code:           req.Code,
		Discount:       req.Discount,
		Description:    req.Description,
		Quantity:       req.Quantity,
		MinOrderAmount: req.MinOrderAmount,
		MaxDiscount:    req.MaxDiscount,
	}
	v.ID = c.Param("voucher_id")
	if err := h.voucherSvc.Update(c.Request.Context(), v, c.GetString(middleware.ContextUserID)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, v)
}

// DeleteVoucher 删除优惠券（管理员，软删除）
// @Summary 删除优惠券（管理员）
// @Tags 优惠券
// @Param voucher_id path string true "优惠券ID"
// @Success 200 {object} response.Response
// @Router /api/v1/vouchers/{voucher_id} [delete]
func (h *Handler) DeleteVoucher(c *gin.Context) {
	err := h.voucherSvc.Delete(c.Request.Context(), c.Param("voucher_id"), c.GetString(middleware.ContextUserID))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
