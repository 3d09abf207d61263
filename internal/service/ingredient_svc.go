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

// ==================== IngredientService 配料服务 ====================

type IngredientService struct {
	gate  *OwnershipGate
	uow   *repository.CatalogUnitOfWork
	refs  *refResolver
	slugs *SlugAllocator
}

// NewIngredientService 创建配料服务
func NewIngredientService(gate *OwnershipGate, uow *repository.CatalogUnitOfWork, slugs *SlugAllocator) *IngredientService {
	return &IngredientService{
		gate:  gate,
		uow:   uow,
		refs:  &refResolver{gate: gate, menuItems: uow.MenuItems, ingredients: uow.Ingredients},
		slugs: slugs,
	}
}

// ListForCafe 咖啡馆全部配料（带菜单项名称），最新在前
func (s *IngredientService) ListForCafe(ctx context.Context, p *middleware.Principal, cafeID int64) ([]*dto.IngredientInfo, error) {
	if _, err := s.gate.AuthorizeCafe(ctx, p, cafeID); err != nil {
		return nil, err
	}

	rows, err := s.uow.Ingredients.ListByCafe(ctx, cafeID, repository.IngredientListLimit)
	if err != nil {
		return nil, storeErr(err)
	}

	list := make([]*dto.IngredientInfo, 0, len(rows))
	for i := range rows {
		list = append(list, toIngredientRowInfo(&rows[i]))
	}
	return list, nil
}

// AddToMenuItem 按菜单项 slug 添加配料
func (s *IngredientService) AddToMenuItem(ctx context.Context, p *middleware.Principal, menuSlug string, req *dto.CreateIngredientRequest) (*dto.IngredientInfo, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, FieldError("name", "required")
	}
	if err := dto.Validate(req); err != nil {
		return nil, ValidationError(err)
	}

	ctx = withAudit(ctx, p)
	item, err := s.refs.menuItem(ctx, p, menuSlug)
	if err != nil {
		return nil, err
	}

	var costCents int64
	if req.Cost != nil {
		if costCents, err = utils.ToCents(*req.Cost); err != nil {
			return nil, FieldError("cost", "lte")
		}
	}

	ing := &model.Ingredient{
		CafeID:       item.CafeID,
		MenuItemID:   item.ID,
		MenuItemSlug: item.Slug,
		Name:         req.Name,
		Quantity:     trimOptional(req.Quantity),
		Unit:         trimOptional(req.Unit),
		CostCents:    costCents,
		Allergen:     boolOr(req.Allergen, false),
		Notes:        trimOptional(req.Notes),
	}

	_, err = s.slugs.Insert(ctx, req.Name, item.CafeID, s.uow.Ingredients.ExistsSlugInCafe, func(slug string) error {
		ing.ID = 0
		ing.Slug = slug
		return s.uow.Ingredients.Create(ctx, ing)
	})
	if err != nil {
		return nil, storeErr(err)
	}

	info := toIngredientInfo(ing)
	info.MenuItemName = item.Name
	return info, nil
}

// Get 按 slug 或名称（不区分大小写）查询配料
func (s *IngredientService) Get(ctx context.Context, p *middleware.Principal, ref string) (*dto.IngredientInfo, error) {
	ing, _, err := s.refs.ingredient(ctx, p, ref)
	if err != nil {
		return nil, err
	}
	return toIngredientInfo(ing), nil
}

// Delete 删除配料及其供应商
func (s *IngredientService) Delete(ctx context.Context, p *middleware.Principal, ref string) error {
	ing, _, err := s.refs.ingredient(ctx, p, ref)
	if err != nil {
		return err
	}
	return storeErr(s.uow.DeleteIngredientCascade(ctx, ing.ID))
}
