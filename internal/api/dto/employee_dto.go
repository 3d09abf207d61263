package dto

import "time"

// CreateEmployeeRequest 创建员工
type CreateEmployeeRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email,max=320"`
	Role      string `json:"role" binding:"required,max=100"`
	Active    *bool  `json:"active"`
}

// EmployeeInfo 员工信息
type EmployeeInfo struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
