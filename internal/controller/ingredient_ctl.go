package controller

import (
	"github.com/gin-gonic/gin"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/service"
)

type IngredientController struct {
	ingredientService *service.IngredientService
}

func NewIngredientController(ingredientService *service.IngredientService) *IngredientController {
	return &IngredientController{ingredientService: ingredientService}
}

// ListForCafe 咖啡馆配料
// @Summary 咖啡馆配料
// @Description 带所属菜单项名称，最新在前
// @Tags Ingredient (配料)
// @Produce json
// @Param id path int true "咖啡馆 ID"
// @Success 200 {object} map[string]interface{} "ok + ingredients"
// @Failure 400 {object} map[string]interface{} "ID 格式错误"
// @Failure 403 {object} map[string]interface{} "无权访问"
// @Router /api/cafe/{id}/ingredients [get]
func (ctl *IngredientController) ListForCafe(c *gin.Context) {
	cafeID, ok := pathID(c, "id", service.ErrInvalidCafeID)
	if !ok {
		return
	}

	list, err := ctl.ingredientService.ListForCafe(c.Request.Context(), middleware.GetPrincipal(c), cafeID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"ingredients": list})
}

// AddToMenuItem 为菜单项添加配料
// @Summary 添加配料
// @Tags Ingredient (配料)
// @Accept json
// @Produce json
// @Param slug path string true "菜单项 slug"
// @Param request body dto.CreateIngredientRequest true "配料"
// @Success 200 {object} map[string]interface{} "ok + ingredient"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Failure 403 {object} map[string]interface{} "无权访问"
// @Failure 404 {object} map[string]interface{} "菜单项不存在"
// @Router /api/menu/items/ingredients/{slug} [post]
func (ctl *IngredientController) AddToMenuItem(c *gin.Context) {
	var req dto.CreateIngredientRequest
	if !bindJSON(c, &req) {
		return
	}

	ing, err := ctl.ingredientService.AddToMenuItem(c.Request.Context(), middleware.GetPrincipal(c), c.Param("slug"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"ingredient": ing})
}

// Get 配料详情
// @Summary 配料详情
// @Description 按 slug 或名称（不区分大小写）查询
// @Tags Ingredient (配料)
// @Produce json
// @Param slug path string true "配料 slug 或名称"
// @Success 200 {object} map[string]interface{} "ok + ingredient"
// @Failure 403 {object} map[string]interface{} "无权访问"
// @Failure 404 {object} map[string]interface{} "不存在"
// @Router /api/ingredient/{slug} [get]
func (ctl *IngredientController) Get(c *gin.Context) {
	ing, err := ctl.ingredientService.Get(c.Request.Context(), middleware.GetPrincipal(c), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"ingredient": ing})
}

// Delete 删除配料（连带供应商）
// @Summary 删除配料
// @Tags Ingredient (配料)
// @Produce json
// @Param slug path string true "配料 slug 或名称"
// @Success 200 {object} map[string]interface{} "ok"
// @Failure 403 {object} map[string]interface{} "无权访问"
// @Failure 404 {object} map[string]interface{} "不存在"
// @Router /api/ingredient/{slug} [delete]
func (ctl *IngredientController) Delete(c *gin.Context) {
	if err := ctl.ingredientService.Delete(c.Request.Context(), middleware.GetPrincipal(c), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, nil)
}
