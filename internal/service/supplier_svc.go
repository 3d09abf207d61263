package service

import (
	"context"
	"strings"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/model"
	"cafe_admin_v1/internal/repository"
	"cafe_admin_v1/pkg/utils"
)

// ==================== SupplierService 供应商服务 ====================

type SupplierService struct {
	gate  *OwnershipGate
	uow   *repository.CatalogUnitOfWork
	refs  *refResolver
	slugs *SlugAllocator
}

// NewSupplierService 创建供应商服务
func NewSupplierService(gate *OwnershipGate, uow *repository.CatalogUnitOfWork, slugs *SlugAllocator) *SupplierService {
	return &SupplierService{
		gate:  gate,
		uow:   uow,
		refs:  &refResolver{gate: gate, menuItems: uow.MenuItems, ingredients: uow.Ingredients},
		slugs: slugs,
	}
}

// ListForCafe 咖啡馆全部供应商，首选在前
func (s *SupplierService) ListForCafe(ctx context.Context, p *middleware.Principal, cafeID int64) ([]*dto.SupplierInfo, error) {
	if _, err := s.gate.AuthorizeCafe(ctx, p, cafeID); err != nil {
		return nil, err
	}

	rows, err := s.uow.Suppliers.ListByCafe(ctx, cafeID)
	if err != nil {
		return nil, storeErr(err)
	}

	list := make([]*dto.SupplierInfo, 0, len(rows))
	for i := range rows {
		list = append(list, toSupplierRowInfo(&rows[i]))
	}
	return list, nil
}

// ListForIngredient 配料的供应商，首选在前，最多 200 条
func (s *SupplierService) ListForIngredient(ctx context.Context, p *middleware.Principal, ref string) ([]*dto.SupplierInfo, error) {
	ing, _, err := s.refs.ingredient(ctx, p, ref)
	if err != nil {
		return nil, err
	}

	suppliers, err := s.uow.Suppliers.ListByIngredient(ctx, ing.ID, repository.SupplierListLimit)
	if err != nil {
		return nil, storeErr(err)
	}

	list := make([]*dto.SupplierInfo, 0, len(suppliers))
	for i := range suppliers {
		info := toSupplierInfo(&suppliers[i])
		info.IngredientName = ing.Name
		info.IngredientSlug = ing.Slug
		list = append(list, info)
	}
	return list, nil
}

// Create 为配料添加供应商
func (s *SupplierService) Create(ctx context.Context, p *middleware.Principal, ref string, req *dto.CreateSupplierRequest) (*dto.SupplierInfo, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Website = trimOptional(req.Website)
	if req.Name == "" {
		return nil, FieldError("name", "required")
	}
	if err := dto.Validate(req); err != nil {
		return nil, ValidationError(err)
	}

	ctx = withAudit(ctx, p)
	ing, _, err := s.refs.ingredient(ctx, p, ref)
	if err != nil {
		return nil, err
	}

	var unitPriceCents int64
	if req.UnitPrice != nil {
		if unitPriceCents, err = utils.ToCents(*req.UnitPrice); err != nil {
			return nil, FieldError("unit_price", "lte")
		}
	}

	supplier := &model.Supplier{
		IngredientID:   ing.ID,
		Name:           req.Name,
		Contact:        trimOptional(req.Contact),
		Website:        req.Website,
		UnitPriceCents: unitPriceCents,
		Unit:           trimOptional(req.Unit),
		LeadTimeDays:   req.LeadTimeDays,
		Preferred:      boolOr(req.Preferred, false),
		Notes:          trimOptional(req.Notes),
	}

	_, err = s.slugs.Insert(ctx, req.Name, ing.ID, s.uow.Suppliers.ExistsSlug, func(slug string) error {
		supplier.ID = 0
		supplier.Slug = slug
		return s.uow.Suppliers.Create(ctx, supplier)
	})
	if err != nil {
		return nil, storeErr(err)
	}

	info := toSupplierInfo(supplier)
	info.IngredientName = ing.Name
	info.IngredientSlug = ing.Slug
	return info, nil
}

// Get 供应商详情
func (s *SupplierService) Get(ctx context.Context, p *middleware.Principal, id int64) (*dto.SupplierInfo, error) {
	if _, err := s.gate.Authorize(ctx, p, repository.EntitySupplier, id); err != nil {
		return nil, err
	}

	supplier, err := s.uow.Suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if supplier == nil {
		return nil, ErrSupplierNotFound
	}
	return toSupplierInfo(supplier), nil
}

// Delete 删除供应商
func (s *SupplierService) Delete(ctx context.Context, p *middleware.Principal, id int64) error {
	if _, err := s.gate.Authorize(ctx, p, repository.EntitySupplier, id); err != nil {
		return err
	}
	return storeErr(s.uow.Suppliers.Delete(ctx, id))
}
