package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mall-api/internal/api/middleware"
	"github.com/d60-Lab/mall-api/internal/service"
	"github.com/d60-Lab/mall-api/pkg/response"
)

type cartItemRequest struct {
	ProductTypeID string `json:"product_type_id" binding:"required"`
	Number        int    `json:"number" binding:"required,gt=0"`
}

// GetCart 获取购物车
// @Summary 我的购物车
// @Tags 购物车
// @Success 200 {object} response.Response{data=model.Cart}
// @Router /api/v1/cart [get]
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.cartSvc.Get(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, cart)
}

// SetCartItem 添加/更新购物车条目
// @Summary 更新购物车条目
// @Tags 购物车
// @Param request body cartItemRequest true "条目"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/cart/items [put]
func (h *Handler) SetCartItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.cartSvc.SetItem(c.Request.Context(), c.GetString(middleware.ContextUserID), req.ProductTypeID, req.Number)
	if err != nil {
		if errors.Is(err, service.ErrProductTypeNotFound) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// ClearCart 清空购物车
// @Summary 清空购物车
// @Tags 购物车
// @Success 200 {object} response.Response
// @Router /api/v1/cart [delete]
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.cartSvc.Clear(c.Request.Context(), c.GetString(middleware.ContextUserID)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// RemoveCartItem 移除条目
// @Summary 移除购物车条目
// @Tags 购物车
// @Param type_id path string true "变体ID"
// @Success 200 {object} response.Response
// @Router /api/v1/cart/items/{type_id} [delete]
func (h *Handler) RemoveCartItem(c *gin.Context) {
	err := h.cartSvc.RemoveItem(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("type_id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
