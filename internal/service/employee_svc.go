package service

import (
	"context"
	"strings"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/model"
	"cafe_admin_v1/internal/repository"
)

// ==================== EmployeeService 员工服务 ====================
// 员工名单不区分咖啡馆，只要求已登录

type EmployeeService struct {
	employees repository.EmployeeRepository
}

// NewEmployeeService 创建员工服务
func NewEmployeeService(employees repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employees: employees}
}

func (s *EmployeeService) List(ctx context.Context, p *middleware.Principal) ([]*dto.EmployeeInfo, error) {
	if p == nil {
		return nil, ErrNotAuthenticated
	}

	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	list := make([]*dto.EmployeeInfo, 0, len(employees))
	for i := range employees {
		list = append(list, toEmployeeInfo(&employees[i]))
	}
	return list, nil
}

// Create 创建员工，created_by 由审计回调从 ctx 写入
func (s *EmployeeService) Create(ctx context.Context, p *middleware.Principal, req *dto.CreateEmployeeRequest) (*dto.EmployeeInfo, error) {
	if p == nil {
		return nil, ErrNotAuthenticated
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = normalizeEmail(req.Email)
	req.Role = strings.TrimSpace(req.Role)
	if err := dto.Validate(req); err != nil {
		return nil, ValidationError(err)
	}

	ctx = withAudit(ctx, p)

	employee := &model.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		Active:    boolOr(req.Active, true),
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, storeErr(err)
	}
	return toEmployeeInfo(employee), nil
}

func (s *EmployeeService) Get(ctx context.Context, p *middleware.Principal, id int64) (*dto.EmployeeInfo, error) {
	if p == nil {
		return nil, ErrNotAuthenticated
	}

	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return toEmployeeInfo(employee), nil
}

// Delete 删除员工，不存在返回 NotFound
func (s *EmployeeService) Delete(ctx context.Context, p *middleware.Principal, id int64) error {
	if p == nil {
		return ErrNotAuthenticated
	}

	deleted, err := s.employees.Delete(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if !deleted {
		return ErrEmployeeNotFound
	}
	return nil
}
