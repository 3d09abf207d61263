package service

import (
	"context"
	"net/url"
	"strings"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/model"
	"cafe_admin_v1/internal/repository"
	"cafe_admin_v1/pkg/utils"
)

// DefaultCurrency 菜单项默认币种
const DefaultCurrency = "EUR"

// ==================== MenuService 菜单服务 ====================

type MenuService struct {
	gate  *OwnershipGate
	uow   *repository.CatalogUnitOfWork
	slugs *SlugAllocator
}

// NewMenuService 创建菜单服务
func NewMenuService(gate *OwnershipGate, uow *repository.CatalogUnitOfWork, slugs *SlugAllocator) *MenuService {
	return &MenuService{gate: gate, uow: uow, slugs: slugs}
}

// ListForCafe 咖啡馆菜单，最新在前
func (s *MenuService) ListForCafe(ctx context.Context, p *middleware.Principal, cafeID int64) ([]*dto.MenuItemInfo, error) {
	if _, err := s.gate.AuthorizeCafe(ctx, p, cafeID); err != nil {
		return nil, err
	}

	items, err := s.uow.MenuItems.ListByCafe(ctx, cafeID)
	if err != nil {
		return nil, storeErr(err)
	}

	list := make([]*dto.MenuItemInfo, 0, len(items))
	for i := range items {
		list = append(list, toMenuItemInfo(&items[i]))
	}
	return list, nil
}

// Create 在主体咖啡馆下创建菜单项，slug 自动分配
func (s *MenuService) Create(ctx context.Context, p *middleware.Principal, req *dto.CreateMenuItemRequest) (*dto.MenuItemInfo, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Name == "" {
		return nil, FieldError("name", "required")
	}
	if err := dto.Validate(req); err != nil {
		return nil, ValidationError(err)
	}

	imageURL, err := normalizeImageURL(req.ImageURL)
	if err != nil {
		return nil, err
	}

	ctx = withAudit(ctx, p)
	cafe, err := s.gate.FindOwnedCafe(ctx, p)
	if err != nil {
		return nil, err
	}
	if cafe == nil {
		return nil, ErrCafeRequired
	}

	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}

	priceCents, err := utils.ToCents(*req.Price)
	if err != nil {
		return nil, FieldError("price", "lte")
	}

	item := &model.MenuItem{
		CafeID:      cafe.ID,
		Name:        req.Name,
		Description: trimOptional(req.Description),
		PriceCents:  priceCents,
		Currency:    currency,
		Available:   boolOr(req.Available, true),
		Category:    trimOptional(req.Category),
		ImageURL:    imageURL,
	}

	base := req.Name
	if req.Slug != "" {
		base = req.Slug
	}

	_, err = s.slugs.Insert(ctx, base, cafe.ID, s.uow.MenuItems.ExistsSlug, func(slug string) error {
		item.ID = 0
		item.Slug = slug
		return s.uow.MenuItems.Create(ctx, item)
	})
	if err != nil {
		return nil, storeErr(err)
	}

	return toMenuItemInfo(item), nil
}

// Get 菜单项详情
func (s *MenuService) Get(ctx context.Context, p *middleware.Principal, id int64) (*dto.MenuItemInfo, error) {
	if _, err := s.gate.Authorize(ctx, p, repository.EntityMenuItem, id); err != nil {
		return nil, err
	}

	item, err := s.uow.MenuItems.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return toMenuItemInfo(item), nil
}

// Delete 删除菜单项，连带其配料与供应商
func (s *MenuService) Delete(ctx context.Context, p *middleware.Principal, id int64) error {
	if _, err := s.gate.Authorize(ctx, p, repository.EntityMenuItem, id); err != nil {
		return err
	}
	return storeErr(s.uow.DeleteMenuItemCascade(ctx, id))
}

// normalizeImageURL 去空白；空串视为未填写；缺少协议时补 https://
func normalizeImageURL(raw *string) (*string, error) {
	v := trimOptional(raw)
	if v == nil {
		return nil, nil
	}

	s := *v
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.ParseRequestURI(s)
	if err != nil || u.Host == "" {
		return nil, FieldError("image_url", "url")
	}
	return &s, nil
}
