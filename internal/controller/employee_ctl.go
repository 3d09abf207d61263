package controller

import (
	"github.com/gin-gonic/gin"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/service"
)

type EmployeeController struct {
	employeeService *service.EmployeeService
}

func NewEmployeeController(employeeService *service.EmployeeService) *EmployeeController {
	return &EmployeeController{employeeService: employeeService}
}

// List 员工列表
// @Summary 员工列表
// @Tags Employee (员工)
// @Produce json
// @Success 200 {object} map[string]interface{} "ok + employees"
// @Router /api/employees [get]
func (e *EmployeeController) List(c *gin.Context) {
	list, err := e.employeeService.List(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"employees": list})
}

// Create 创建员工
// @Summary 创建员工
// @Tags Employee (员工)
// @Accept json
// @Produce json
// @Param request body dto.CreateEmployeeRequest true "员工"
// @Success 200 {object} map[string]interface{} "ok + employee"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /api/employees [post]
func (e *EmployeeController) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := e.employeeService.Create(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"employee": employee})
}

// Get 员工详情
// @Summary 员工详情
// @Tags Employee (员工)
// @Produce json
// @Param id path int true "员工 ID"
// @Success 200 {object} map[string]interface{} "ok + employee"
// @Failure 404 {object} map[string]interface{} "不存在"
// @Router /api/employees/{id} [get]
func (e *EmployeeController) Get(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrInvalidID)
	if !ok {
		return
	}

	employee, err := e.employeeService.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"employee": employee})
}

// Delete 删除员工
// @Summary 删除员工
// @Tags Employee (员工)
// @Produce json
// @Param id path int true "员工 ID"
// @Success 200 {object} map[string]interface{} "ok"
// @Failure 404 {object} map[string]interface{} "不存在"
// @Router /api/employees/{id} [delete]
func (e *EmployeeController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", service.ErrInvalidID)
	if !ok {
		return
	}

	if err := e.employeeService.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, nil)
}
