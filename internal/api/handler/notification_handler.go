package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mall-api/internal/api/middleware"
	"github.com/d60-Lab/mall-api/pkg/response"
)

// MyNotifications 我的通知列表
// @Summary 我的通知
// @Tags 通知
// @Param skip query int false "跳过数量" default(0)
// @Param limit query int false "返回数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/notifications [get]
func (h *Handler) MyNotifications(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	ns, total, err := h.notificationSvc.ListByUser(c.Request.Context(), c.GetString(middleware.ContextUserID), skip, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"items": ns, "total": total, "skip": skip, "limit": limit})
}

// MarkNotificationRead 标记已读
// @Summary 通知标记已读
// @Tags 通知
// @Param notification_id path string true "通知ID"
// @Success 200 {object} response.Response
// @Router /api/v1/notifications/{notification_id}/read [patch]
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	err := h.notificationSvc.MarkRead(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("notification_id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
