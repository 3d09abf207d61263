package model

// Cafe 咖啡馆（租户根），一个用户只能拥有一家
type Cafe struct {
	BaseModel
	AuditMixin
	Name         string  `gorm:"size:300;not null"`
	Slug         string  `gorm:"size:320;index;not null"`
	OwnerID      string  `gorm:"size:64;uniqueIndex;not null"`
	Address      *string `gorm:"size:500"`
	City         *string `gorm:"size:120"`
	Country      *string `gorm:"size:120"`
	Phone        *string `gorm:"size:50"`
	Timezone     *string `gorm:"size:64"`
	OpeningHours *string `gorm:"size:1000"`
	PosEnabled   bool
}

func (Cafe) TableName() string {
	return "cafes"
}

// MenuItem 菜单项，(cafe_id, slug) 唯一
type MenuItem struct {
	BaseModel
	AuditMixin
	CafeID      int64   `gorm:"not null;uniqueIndex:idx_menu_items_cafe_slug,priority:1"`
	Name        string  `gorm:"size:300;not null"`
	Slug        string  `gorm:"size:320;not null;uniqueIndex:idx_menu_items_cafe_slug,priority:2"`
	Description *string `gorm:"type:text"`
	PriceCents  int64   `gorm:"not null;check:chk_menu_items_price_cents,price_cents >= 0"`
	Currency    string  `gorm:"size:10;not null"`
	Available   bool
	Category    *string `gorm:"size:120"`
	ImageURL    *string `gorm:"size:2000"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}

// Ingredient 配料，归属于菜单项
// CafeID 与 MenuItemSlug 冗余自所属菜单项；Slug 为配料自身标识，(cafe_id, slug) 唯一
type Ingredient struct {
	BaseModel
	AuditMixin
	CafeID       int64   `gorm:"not null;uniqueIndex:idx_ingredients_cafe_slug,priority:1"`
	MenuItemID   int64   `gorm:"not null;index"`
	MenuItemSlug string  `gorm:"size:320;not null;index"`
	Name         string  `gorm:"size:300;not null"`
	Slug         string  `gorm:"size:320;not null;uniqueIndex:idx_ingredients_cafe_slug,priority:2"`
	Quantity     *string `gorm:"size:100"`
	Unit         *string `gorm:"size:50"`
	CostCents    int64   `gorm:"not null;check:chk_ingredients_cost_cents,cost_cents >= 0"`
	Allergen     bool
	Notes        *string `gorm:"size:2000"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// Supplier 供应商，归属于配料，(ingredient_id, slug) 唯一
type Supplier struct {
	BaseModel
	AuditMixin
	IngredientID   int64   `gorm:"not null;uniqueIndex:idx_suppliers_ingredient_slug,priority:1"`
	Slug           string  `gorm:"size:320;not null;uniqueIndex:idx_suppliers_ingredient_slug,priority:2"`
	Name           string  `gorm:"size:300;not null"`
	Contact        *string `gorm:"size:300"`
	Website        *string `gorm:"size:500"`
	UnitPriceCents int64   `gorm:"not null;check:chk_suppliers_unit_price_cents,unit_price_cents >= 0"`
	Unit           *string `gorm:"size:50"`
	LeadTimeDays   *int    `gorm:"check:chk_suppliers_lead_time_days,lead_time_days IS NULL OR lead_time_days >= 0"`
	Preferred      bool
	Notes          *string `gorm:"size:2000"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
