package service

import (
	"strings"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/model"
	"cafe_admin_v1/internal/repository"
	"cafe_admin_v1/pkg/utils"
)

// ==================== 模型 -> DTO ====================
// 金额在此处由分转换为十进制

func toUserInfo(u *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		HasOnboarded: u.HasOnboarded,
		CreatedAt:    u.CreatedAt,
	}
}

func toCafeInfo(c *model.Cafe) *dto.CafeInfo {
	return &dto.CafeInfo{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		OwnerID:      c.OwnerID,
		Address:      c.Address,
		City:         c.City,
		Country:      c.Country,
		Phone:        c.Phone,
		Timezone:     c.Timezone,
		OpeningHours: c.OpeningHours,
		PosEnabled:   c.PosEnabled,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toMenuItemInfo(m *model.MenuItem) *dto.MenuItemInfo {
	return &dto.MenuItemInfo{
		ID:          m.ID,
		CafeID:      m.CafeID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Price:       utils.FromCents(m.PriceCents),
		PriceCents:  m.PriceCents,
		Currency:    m.Currency,
		Available:   m.Available,
		Category:    m.Category,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toIngredientInfo(i *model.Ingredient) *dto.IngredientInfo {
	return &dto.IngredientInfo{
		ID:           i.ID,
		MenuItemID:   i.MenuItemID,
		MenuItemSlug: i.MenuItemSlug,
		Name:         i.Name,
		Slug:         i.Slug,
		Quantity:     i.Quantity,
		Unit:         i.Unit,
		Cost:         utils.FromCents(i.CostCents),
		CostCents:    i.CostCents,
		Allergen:     i.Allergen,
		Notes:        i.Notes,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func toIngredientRowInfo(r *repository.IngredientRow) *dto.IngredientInfo {
	info := toIngredientInfo(&r.Ingredient)
	info.MenuItemName = r.MenuItemName
	return info
}

func toSupplierInfo(s *model.Supplier) *dto.SupplierInfo {
	return &dto.SupplierInfo{
		ID:             s.ID,
		IngredientID:   s.IngredientID,
		Slug:           s.Slug,
		Name:           s.Name,
		Contact:        s.Contact,
		Website:        s.Website,
		UnitPrice:      utils.FromCents(s.UnitPriceCents),
		UnitPriceCents: s.UnitPriceCents,
		Unit:           s.Unit,
		LeadTimeDays:   s.LeadTimeDays,
		Preferred:      s.Preferred,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func toSupplierRowInfo(r *repository.SupplierRow) *dto.SupplierInfo {
	info := toSupplierInfo(&r.Supplier)
	info.IngredientName = r.IngredientName
	info.IngredientSlug = r.IngredientSlug
	return info
}

func toEmployeeInfo(e *model.Employee) *dto.EmployeeInfo {
	return &dto.EmployeeInfo{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Role:      e.Role,
		Active:    e.Active,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
	}
}

// ==================== 输入清洗 ====================

// trimOptional 去首尾空白，空串视为未填写
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
