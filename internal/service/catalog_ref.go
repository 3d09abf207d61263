package service

import (
	"context"
	"strings"

	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/model"
	"cafe_admin_v1/internal/repository"
)

// refResolver 按 slug / 名称在主体咖啡馆内定位菜单项与配料
// 本店未命中但其他店存在 -> Forbidden；都不存在 -> NotFound
type refResolver struct {
	gate        *OwnershipGate
	menuItems   repository.MenuItemRepository
	ingredients repository.IngredientRepository
}

func (r *refResolver) menuItem(ctx context.Context, p *middleware.Principal, slug string) (*model.MenuItem, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrMissingSlug
	}

	cafe, err := r.gate.FindOwnedCafe(ctx, p)
	if err != nil {
		return nil, err
	}
	if cafe != nil {
		item, err := r.menuItems.GetBySlug(ctx, cafe.ID, slug)
		if err != nil {
			return nil, storeErr(err)
		}
		if item != nil {
			return item, nil
		}
	}

	elsewhere, err := r.menuItems.ExistsSlugAnywhere(ctx, slug)
	if err != nil {
		return nil, storeErr(err)
	}
	if elsewhere {
		return nil, ErrForbidden
	}
	return nil, ErrMenuItemNotFound
}

func (r *refResolver) ingredient(ctx context.Context, p *middleware.Principal, ref string) (*model.Ingredient, int64, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, 0, ErrMissingSlug
	}

	cafe, err := r.gate.FindOwnedCafe(ctx, p)
	if err != nil {
		return nil, 0, err
	}
	if cafe != nil {
		ing, err := r.ingredients.FindByRef(ctx, cafe.ID, ref)
		if err != nil {
			return nil, 0, storeErr(err)
		}
		if ing != nil {
			return ing, cafe.ID, nil
		}
	}

	elsewhere, err := r.ingredients.ExistsRefAnywhere(ctx, ref)
	if err != nil {
		return nil, 0, storeErr(err)
	}
	if elsewhere {
		return nil, 0, ErrForbidden
	}
	return nil, 0, ErrIngredientNotFound
}
