package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mall-api/internal/api/middleware"
	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/service"
	"github.com/d60-Lab/mall-api/pkg/response"
)

type addressRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Province    string `json:"province"`
	District    string `json:"district"`
	Ward        string `json:"ward"`
	Detail      string `json:"detail"`
}

// CreateAddress 新建收货地址
// @Summary 新建收货地址
// @Tags 地址
// @Param request body addressRequest true "地址"
// @Success 201 {object} response.Response{data=model.Address}
// @Failure 400 {object} response.Response
// @Router /api/v1/addresses [post]
func (h *Handler) CreateAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	addr := &model.Address{
		UserID:      c.GetString(middleware.ContextUserID),
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Province:    req.Province,
		District:    req.District,
		Ward:        req.Ward,
		Detail:      req.Detail,
	}
	if err := h.addressSvc.Create(c.Request.Context(), addr); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, addr)
}

// MyAddresses 我的地址列表
// @Summary 我的收货地址
// @Tags 地址
// @Success 200 {object} response.Response
// @Router /api/v1/addresses [get]
func (h *Handler) MyAddresses(c *gin.Context) {
	addrs, err := h.addressSvc.ListByUser(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, addrs)
}

// GetAddress 地址详情
// @Summary 地址详情
// @Tags 地址
// @Param address_id path string true "地址ID"
// @Success 200 {object} response.Response{data=model.Address}
// @Failure 404 {object} response.Response
// @Router /api/v1/addresses/{address_id} [get]
func (h *Handler) GetAddress(c *gin.Context) {
	addr, err := h.addressSvc.Get(c.Request.Context(), c.Param("address_id"), c.GetString(middleware.ContextUserID))
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, addr)
}
