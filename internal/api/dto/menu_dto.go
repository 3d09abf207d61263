package dto

import "time"

// ==================== 菜单项 ====================

// CreateMenuItemRequest 创建菜单项
// price 为十进制金额，入库前转换为分，上限为 utils.MaxAmount
type CreateMenuItemRequest struct {
	Name        string   `json:"name" binding:"required,max=300"`
	Slug        string   `json:"slug" binding:"omitempty,max=320"`
	Description *string  `json:"description" binding:"omitempty,max=5000"`
	Price       *float64 `json:"price" binding:"required,gte=0,lte=92233720368547758"`
	Currency    string   `json:"currency" binding:"omitempty,max=10"`
	Available   *bool    `json:"available"`
	Category    *string  `json:"category" binding:"omitempty,max=120"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,max=2000"`
}

// MenuItemInfo 菜单项信息
type MenuItemInfo struct {
	ID          int64     `json:"id"`
	CafeID      int64     `json:"cafe_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	Available   bool      `json:"available"`
	Category    *string   `json:"category"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ==================== 配料 ====================

// CreateIngredientRequest 为菜单项添加配料
type CreateIngredientRequest struct {
	Name     string   `json:"name" binding:"required,max=300"`
	Quantity *string  `json:"quantity" binding:"omitempty,max=100"`
	Unit     *string  `json:"unit" binding:"omitempty,max=50"`
	Cost     *float64 `json:"cost" binding:"omitempty,gte=0,lte=92233720368547758"`
	Allergen *bool    `json:"allergen"`
	Notes    *string  `json:"notes" binding:"omitempty,max=2000"`
}

// IngredientInfo 配料信息
type IngredientInfo struct {
	ID           int64     `json:"id"`
	MenuItemID   int64     `json:"menu_item_id"`
	MenuItemSlug string    `json:"menu_item_slug"`
	MenuItemName string    `json:"menu_item_name,omitempty"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Quantity     *string   `json:"quantity"`
	Unit         *string   `json:"unit"`
	Cost         float64   `json:"cost"`
	CostCents    int64     `json:"cost_cents"`
	Allergen     bool      `json:"allergen"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ==================== 供应商 ====================

// CreateSupplierRequest 为配料添加供应商
type CreateSupplierRequest struct {
	Name         string   `json:"name" binding:"required,max=300"`
	Contact      *string  `json:"contact" binding:"omitempty,max=300"`
	Website      *string  `json:"website" binding:"omitempty,url,max=500"`
	UnitPrice    *float64 `json:"unit_price" binding:"omitempty,gte=0,lte=92233720368547758"`
	Unit         *string  `json:"unit" binding:"omitempty,max=50"`
	LeadTimeDays *int     `json:"lead_time_days" binding:"omitempty,gte=0"`
	Preferred    *bool    `json:"preferred"`
	Notes        *string  `json:"notes" binding:"omitempty,max=2000"`
}

// SupplierInfo 供应商信息
type SupplierInfo struct {
	ID             int64     `json:"id"`
	IngredientID   int64     `json:"ingredient_id"`
	IngredientName string    `json:"ingredient_name,omitempty"`
	IngredientSlug string    `json:"ingredient_slug,omitempty"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	Contact        *string   `json:"contact"`
	Website        *string   `json:"website"`
	UnitPrice      float64   `json:"unit_price"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Unit           *string   `json:"unit"`
	LeadTimeDays   *int      `json:"lead_time_days"`
	Preferred      bool      `json:"preferred"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
