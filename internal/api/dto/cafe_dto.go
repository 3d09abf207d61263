package dto

import "time"

// CafeInfo 咖啡馆信息
type CafeInfo struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	OwnerID      string    `json:"owner_id"`
	Address      *string   `json:"address"`
	City         *string   `json:"city"`
	Country      *string   `json:"country"`
	Phone        *string   `json:"phone"`
	Timezone     *string   `json:"timezone"`
	OpeningHours *string   `json:"opening_hours"`
	PosEnabled   bool      `json:"pos_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateCafeRequest 更新咖啡馆（名称必填，由服务层返回 name_required）
type UpdateCafeRequest struct {
	Name    string  `json:"name" binding:"max=300"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
}

// OnboardingRequest 完成引导（创建咖啡馆）
type OnboardingRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=300"`
	Slug         string  `json:"slug" binding:"omitempty,min=2,max=320,slug"`
	Address      *string `json:"address" binding:"omitempty,max=500"`
	City         *string `json:"city" binding:"omitempty,max=120"`
	Country      *string `json:"country" binding:"omitempty,max=120"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Timezone     *string `json:"timezone" binding:"omitempty,max=64"`
	OpeningHours *string `json:"opening_hours" binding:"omitempty,max=1000"`
	PosEnabled   *bool   `json:"pos_enabled"`
}
