package service

import (
	"context"
	"errors"

	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/model"
	"cafe_admin_v1/internal/repository"
)

// ==================== OwnershipGate 归属校验 ====================

// Ownership 校验通过后的归属信息
type Ownership struct {
	Kind     repository.EntityKind
	TargetID int64
	CafeID   int64
	OwnerID  string
}

// OwnershipGate 沿 供应商 -> 配料 -> 菜单项 -> 咖啡馆 向上查到 owner_id 并与当前主体比较
type OwnershipGate struct {
	owners repository.OwnershipRepository
	cafes  repository.CafeRepository
}

// NewOwnershipGate 创建归属校验
func NewOwnershipGate(owners repository.OwnershipRepository, cafes repository.CafeRepository) *OwnershipGate {
	return &OwnershipGate{owners: owners, cafes: cafes}
}

// Authorize 校验主体对目标实体的归属
// 目标不存在 -> NotFound；存在但不属于主体（或归属链断裂）-> Forbidden
func (g *OwnershipGate) Authorize(ctx context.Context, p *middleware.Principal, kind repository.EntityKind, id int64) (*Ownership, error) {
	if p == nil {
		return nil, ErrNotAuthenticated
	}

	ref, err := g.owners.ResolveOwner(ctx, kind, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if ref == nil {
		return nil, notFoundFor(kind)
	}
	if ref.OwnerID == nil || ref.CafeID == nil || *ref.OwnerID != p.UserID {
		return nil, ErrForbidden
	}

	return &Ownership{
		Kind:     kind,
		TargetID: ref.TargetID,
		CafeID:   *ref.CafeID,
		OwnerID:  *ref.OwnerID,
	}, nil
}

// AuthorizeCafe 直接校验咖啡馆归属，供以咖啡馆 ID 为范围的列表使用
// 不存在的咖啡馆同样返回 Forbidden，不暴露其他租户的 ID 是否存在
func (g *OwnershipGate) AuthorizeCafe(ctx context.Context, p *middleware.Principal, cafeID int64) (*Ownership, error) {
	own, err := g.Authorize(ctx, p, repository.EntityCafe, cafeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return own, nil
}

// OwnedCafe 主体拥有的咖啡馆，没有则返回 ErrCafeNotFound
func (g *OwnershipGate) OwnedCafe(ctx context.Context, p *middleware.Principal) (*model.Cafe, error) {
	cafe, err := g.FindOwnedCafe(ctx, p)
	if err != nil {
		return nil, err
	}
	if cafe == nil {
		return nil, ErrCafeNotFound
	}
	return cafe, nil
}

// FindOwnedCafe 主体拥有的咖啡馆，没有返回 nil, nil
func (g *OwnershipGate) FindOwnedCafe(ctx context.Context, p *middleware.Principal) (*model.Cafe, error) {
	if p == nil {
		return nil, ErrNotAuthenticated
	}
	cafe, err := g.cafes.GetByOwner(ctx, p.UserID)
	if err != nil {
		return nil, storeErr(err)
	}
	return cafe, nil
}

// withAudit 确保 ctx 带有审计信息，供 gorm 回调写入 created_by / updated_by
func withAudit(ctx context.Context, p *middleware.Principal) context.Context {
	if p == nil || middleware.GetAuditInfo(ctx) != nil {
		return ctx
	}
	return middleware.WithAuditInfo(ctx, p.UserID, p.Email)
}

func notFoundFor(kind repository.EntityKind) error {
	switch kind {
	case repository.EntityCafe:
		return ErrNotFound
	case repository.EntityMenuItem:
		return ErrMenuItemNotFound
	case repository.EntityIngredient:
		return ErrIngredientNotFound
	case repository.EntitySupplier:
		return ErrSupplierNotFound
	default:
		return ErrNotFound
	}
}
