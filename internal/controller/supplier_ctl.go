package controller

import (
	"github.com/gin-gonic/gin"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/service"
)

type SupplierController struct {
	supplierService *service.SupplierService
}

func NewSupplierController(supplierService *service.SupplierService) *SupplierController {
	return &SupplierController{supplierService: supplierService}
}

// ListForCafe 咖啡馆全部供应商
// @Summary 咖啡馆供应商
// @Tags Supplier (供应商)
// @Produce json
// @Param id path int true "咖啡馆 ID"
// @Success 200 {object} map[string]interface{} "ok + suppliers"
// @Failure 400 {object} map[string]interface{} "ID 格式错误"
// @Failure 403 {object} map[string]interface{} "无权访问"
// @Router /api/cafe/{id}/suppliers [get]
func (s *SupplierController) ListForCafe(c *gin.Context) {
	cafeID, ok := pathID(c, "id", service.ErrInvalidCafeID)
	if !ok {
		return
	}

	list, err := s.supplierService.ListForCafe(c.Request.Context(), middleware.GetPrincipal(c), cafeID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"suppliers": list})
}

// ListForIngredient 配料的供应商
// @Summary 配料供应商列表
// @Description 首选供应商在前，最多 200 条
// @Tags Supplier (供应商)
// @Produce json
// @Param slug path string true "配料 slug 或名称"
// @Success 200 {object} map[string]interface{} "ok + suppliers"
// @Failure 403 {object} map[string]interface{} "无权访问"
// @Failure 404 {object} map[string]interface{} "配料不存在"
// @Router /api/ingredients/{slug}/suppliers [get]
func (s *SupplierController) ListForIngredient(c *gin.Context) {
	list, err := s.supplierService.ListForIngredient(c.Request.Context(), middleware.GetPrincipal(c), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"suppliers": list})
}

// Create 为配料添加供应商
// @Summary 添加供应商
// @Tags Supplier (供应商)
// @Accept json
// @Produce json
// @Param slug path string true "配料 slug 或名称"
// @Param request body dto.CreateSupplierRequest true "供应商"
// @Success 200 {object} map[string]interface{} "ok + supplier"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Failure 403 {object} map[string]interface{} "无权访问"
// @Failure 404 {object} map[string]interface{} "配料不存在"
// @Router /api/ingredients/{slug}/suppliers [post]
func (s *SupplierController) Create(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := s.supplierService.Create(c.Request.Context(), middleware.GetPrincipal(c), c.Param("slug"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"supplier": supplier})
}

// Get 供应商详情
// @Summary 供应商详情
// @Tags Supplier (供应商)
// @Produce json
// @Param id path int true "供应商 ID"
// @Success 200 {object} map[string]interface{} "ok + supplier"
// @Failure 400 {object} map[string]interface{} "ID 格式错误"
// @Failure 403 {object} map[string]interface{} "无权访问"
// @Failure 404 {object} map[string]interface{} "不存在"
// @Router /api/suppliers/{id} [get]
func (s *SupplierController) Get(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrInvalidID)
	if !ok {
		return
	}

	supplier, err := s.supplierService.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"supplier": supplier})
}

// Delete 删除供应商
// @Summary 删除供应商
// @Tags Supplier (供应商)
// @Produce json
// @Param id path int true "供应商 ID"
// @Success 200 {object} map[string]interface{} "ok"
// @Failure 400 {object} map[string]interface{} "ID 格式错误"
// @Failure 403 {object} map[string]interface{} "无权访问"
// @Failure 404 {object} map[string]interface{} "不存在"
// @Router /api/suppliers/{id} [delete]
func (s *SupplierController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrInvalidID)
	if !ok {
		return
	}

	if err := s.supplierService.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, nil)
}
