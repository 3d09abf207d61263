package controller

import (
	"github.com/gin-gonic/gin"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/service"
)

type CafeController struct {
	cafeService       *service.CafeService
	onboardingService *service.OnboardingService
}

func NewCafeController(cafeService *service.CafeService, onboardingService *service.OnboardingService) *CafeController {
	return &CafeController{cafeService: cafeService, onboardingService: onboardingService}
}

// GetCurrent 当前用户的咖啡馆
// @Summary 当前咖啡馆
// @Description 未创建时 cafe 为 null
// @Tags Cafe (咖啡馆)
// @Produce json
// @Success 200 {object} map[string]interface{} "ok + cafe"
// @Failure 401 {object} map[string]interface{} "未登录"
// @Router /api/cafe [get]
func (ctl *CafeController) GetCurrent(c *gin.Context) {
	cafe, err := ctl.cafeService.GetCurrent(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"cafe": cafe})
}

// Update 更新咖啡馆
// @Summary 更新咖啡馆
// @Description 更新名称、地址、电话
// @Tags Cafe (咖啡馆)
// @Accept json
// @Produce json
// @Param request body dto.UpdateCafeRequest true "更新参数"
// @Success 200 {object} map[string]interface{} "ok + cafe"
// @Failure 400 {object} map[string]interface{} "名称为空"
// @Failure 404 {object} map[string]interface{} "尚未创建咖啡馆"
// @Router /api/cafe [put]
func (ctl *CafeController) Update(c *gin.Context) {
	var req dto.UpdateCafeRequest
	if !bindJSON(c, &req) {
		return
	}

	cafe, err := ctl.cafeService.Update(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"cafe": cafe})
}

// CompleteOnboarding 完成引导
// @Summary 完成引导
// @Description 创建咖啡馆并标记用户已引导，每个用户只能有一家
// @Tags Cafe (咖啡馆)
// @Accept json
// @Produce json
// @Param request body dto.OnboardingRequest true "咖啡馆信息"
// @Success 200 {object} map[string]interface{} "ok + cafe"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Failure 409 {object} map[string]interface{} "已拥有咖啡馆"
// @Router /api/onboarding/complete [post]
func (ctl *CafeController) CompleteOnboarding(c *gin.Context) {
	var req dto.OnboardingRequest
	if !bindJSON(c, &req) {
		return
	}

	cafe, err := ctl.onboardingService.Complete(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"cafe": cafe})
}
