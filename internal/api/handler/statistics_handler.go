package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mall-api/pkg/response"
)

// BestSellingProducts 畅销商品榜单（管理员）
// @Summary 畅销商品榜单（管理员）
// @Tags 统计
// @Param top query int false "榜单长度：5/10/15/20" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/statistics/products/best-selling [get]
func (h *Handler) BestSellingProducts(c *gin.Context) {
	top, _ := strconv.Atoi(c.DefaultQuery("top", "10"))
	items, err := h.statsSvc.BestSelling(c.Request.Context(), top)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, items)
}

// ProductStatisticsSummary 商品统计概览（管理员）
// @Summary 商品统计概览（管理员）
// @Tags 统计
// @Param top query int false "榜单长度：5/10/15/20" default(5)
// @Success 200 {object} response.Response{data=service.ProductSummary}
// @Router /api/v1/statistics/products/summary [get]
func (h *Handler) ProductStatisticsSummary(c *gin.Context) {
	top, _ := strconv.Atoi(c.DefaultQuery("top", "5"))
	summary, err := h.statsSvc.Summary(c.Request.Context(), top)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, summary)
}

// DashboardStatistics 看板统计（管理员）
// @Summary 看板统计（管理员）
// @Tags 统计
// @Param days query int false "逐日营收天数，1-30" default(7)
// @Success 200 {object} response.Response{data=service.DashboardStats}
// @Router /api/v1/statistics/dashboard [get]
func (h *Handler) DashboardStatistics(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	stats, err := h.statsSvc.Dashboard(c.Request.Context(), days)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, stats)
}
