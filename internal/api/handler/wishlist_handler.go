package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mall-api/internal/api/middleware"
	"github.com/d60-Lab/mall-api/internal/service"
	"github.com/d60-Lab/mall-api/pkg/response"
)

// GetWishlist 我的心愿单
// @Summary 我的心愿单
// @Tags 心愿单
// @Success 200 {object} response.Response{data=model.Wishlist}
// @Router /api/v1/wishlist [get]
func (h *Handler) GetWishlist(c *gin.Context) {
	wl, err := h.wishlistSvc.Get(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, wl)
}

// AddWishlistItem 收藏变体（幂等）
// @Summary 添加心愿单条目
// @Tags 心愿单
// @Param type_id path string true "变体ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/wishlist/items/{type_id} [post]
func (h *Handler) AddWishlistItem(c *gin.Context) {
	err := h.wishlistSvc.AddItem(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("type_id"))
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

// RemoveWishlistItem 取消收藏
// @Summary 移除心愿单条目
// @Tags 心愿单
// @Param type_id path string true "变体ID"
// @Success 200 {object} response.Response
// @Router /api/v1/wishlist/items/{type_id} [delete]
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	err := h.wishlistSvc.RemoveItem(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("type_id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
