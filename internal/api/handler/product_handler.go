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

// ListProducts 商品列表
// @Summary 商品列表
// @Tags 商品
// @Param q query string false "关键字"
// @Param skip query int false "跳过数量" default(0)
// @Param limit query int false "返回数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	products, total, err := h.productSvc.List(c.Request.Context(), c.Query("q"), skip, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"items": products, "total": total, "skip": skip, "limit": limit})
}

// GetProduct 商品详情
// @Summary 商品详情
// @Tags 商品
// @Param product_id path string true "商品ID"
// @Success 200 {object} response.Response{data=model.Product}
// @Failure 404 {object} response.Response
// @Router /api/v1/products/{product_id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.productSvc.Get(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		if errors.Is(err, service.ErrProductTypeNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, product)
}

type productRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	IsActive    *bool  `json:"is_active"`
}

// CreateProduct 新建商品（管理员）
// @Summary 新建商品（管理员）
// @Tags 商品
// @Param request body productRequest true "商品"
// @Success 201 {object} response.Response{data=model.Product}
// @Router /api/v1/products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		IsActive:    true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := h.productSvc.Create(c.Request.Context(), p, c.GetString(middleware.ContextUserID)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, p)
}

// UpdateProduct 更新商品（管理员）
// @Summary 更新商品（管理员）
// @Tags 商品
// @Param product_id path string true "商品ID"
// @Param request body productRequest true "商品"
// @Success 200 {object} response.Response{data=model.Product}
// @Failure 404 {object} response.Response
// @Router /api/v1/products/{product_id} [put]
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.productSvc.Get(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		if errors.Is(err, service.ErrProductTypeNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	p.Name = req.Name
	p.Description = req.Description
	p.Thumbnail = req.Thumbnail
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := h.productSvc.Update(c.Request.Context(), p, c.GetString(middleware.ContextUserID)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, p)
}

// DeleteProduct 下架商品（管理员，软删除）
// @Summary 下架商品（管理员）
// @Tags 商品
// @Param product_id path string true "商品ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/products/{product_id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	err := h.productSvc.Delete(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		if errors.Is(err, service.ErrProductTypeNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetProductType 变体详情（走缓存）
// @Summary 变体详情
// @Tags 商品
// @Param type_id path string true "变体ID"
// @Success 200 {object} response.Response{data=model.ProductType}
// @Failure 404 {object} response.Response
// @Router /api/v1/product-types/{type_id} [get]
func (h *Handler) GetProductType(c *gin.Context) {
	pt, err := h.productSvc.GetType(c.Request.Context(), c.Param("type_id"))
	if err != nil {
		if errors.Is(err, service.ErrProductTypeNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, pt)
}
