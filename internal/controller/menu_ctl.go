package controller

import (
	"github.com/gin-gonic/gin"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/service"
)

type MenuController struct {
	menuService *service.MenuService
}

func NewMenuController(menuService *service.MenuService) *MenuController {
	return &MenuController{menuService: menuService}
}

// ListForCafe 咖啡馆菜单
// @Summary 咖啡馆菜单
// @Tags Menu (菜单)
// @Produce json
// @Param id path int true "咖啡馆 ID"
// @Success 200 {object} map[string]interface{} "ok + items"
// @Failure 400 {object} map[string]interface{} "ID 格式错误"
// @Failure 403 {object} map[string]interface{} "无权访问"
// @Router /api/cafe/{id}/menu [get]
func (m *MenuController) ListForCafe(c *gin.Context) {
	cafeID, ok := pathID(c, "id", service.ErrInvalidCafeID)
	if !ok {
		return
	}

	items, err := m.menuService.ListForCafe(c.Request.Context(), middleware.GetPrincipal(c), cafeID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"items": items})
}

// Create 创建菜单项
// @Summary 创建菜单项
// @Description 在当前用户的咖啡馆下创建菜单项，slug 自动生成并在店内唯一
// @Tags Menu (菜单)
// @Accept json
// @Produce json
// @Param request body dto.CreateMenuItemRequest true "菜单项"
// @Success 200 {object} map[string]interface{} "ok + item"
// @Failure 400 {object} map[string]interface{} "参数错误 / 尚未创建咖啡馆"
// @Failure 409 {object} map[string]interface{} "slug 冲突"
// @Router /api/menu/create [post]
func (m *MenuController) Create(c *gin.Context) {
	var req dto.CreateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := m.menuService.Create(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"item": item})
}

// Get 菜单项详情
// @Summary 菜单项详情
// @Tags Menu (菜单)
// @Produce json
// @Param id path int true "菜单项 ID"
// @Success 200 {object} map[string]interface{} "ok + item"
// @Failure 403 {object} map[string]interface{} "无权访问"
// @Failure 404 {object} map[string]interface{} "不存在"
// @Router /api/menu/item/{id} [get]
func (m *MenuController) Get(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrInvalidID)
	if !ok {
		return
	}

	item, err := m.menuService.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"item": item})
}

// Delete 删除菜单项（连带配料与供应商）
// @Summary 删除菜单项
// @Tags Menu (菜单)
// @Produce json
// @Param id path int true "菜单项 ID"
// @Success 200 {object} map[string]interface{} "ok"
// @Failure 403 {object} map[string]interface{} "无权访问"
// @Failure 404 {object} map[string]interface{} "不存在"
// @Router /api/menu/item/{id} [delete]
func (m *MenuController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrInvalidID)
	if !ok {
		return
	}

	if err := m.menuService.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, nil)
}
