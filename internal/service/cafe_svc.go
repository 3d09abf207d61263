package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/model"
	"cafe_admin_v1/internal/repository"
)

// ==================== CafeService 咖啡馆服务 ====================

// CafeService 咖啡馆查询与更新
type CafeService struct {
	gate  *OwnershipGate
	cafes repository.CafeRepository
}

// NewCafeService 创建咖啡馆服务
func NewCafeService(gate *OwnershipGate, cafes repository.CafeRepository) *CafeService {
	return &CafeService{gate: gate, cafes: cafes}
}

// GetCurrent 当前用户的咖啡馆，未创建时返回 nil
func (s *CafeService) GetCurrent(ctx context.Context, p *middleware.Principal) (*dto.CafeInfo, error) {
	cafe, err := s.gate.FindOwnedCafe(ctx, p)
	if err != nil || cafe == nil {
		return nil, err
	}
	return toCafeInfo(cafe), nil
}

// Update 更新名称 / 地址 / 电话
func (s *CafeService) Update(ctx context.Context, p *middleware.Principal, req *dto.UpdateCafeRequest) (*dto.CafeInfo, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if err := dto.Validate(req); err != nil {
		return nil, ValidationError(err)
	}

	ctx = withAudit(ctx, p)
	cafe, err := s.gate.OwnedCafe(ctx, p)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"name":    req.Name,
		"address": trimOptional(req.Address),
		"phone":   trimOptional(req.Phone),
	}
	if err := s.cafes.UpdateFields(ctx, cafe.ID, fields); err != nil {
		return nil, storeErr(err)
	}

	updated, err := s.cafes.GetByID(ctx, cafe.ID)
	if err != nil {
		return nil, storeErr(err)
	}
	if updated == nil {
		return nil, ErrCafeNotFound
	}
	return toCafeInfo(updated), nil
}

// ==================== OnboardingService 引导服务 ====================

// OnboardingService 创建咖啡馆并标记用户已引导（单事务）
type OnboardingService struct {
	uow   *repository.CafeUnitOfWork
	slugs *SlugAllocator
}

// NewOnboardingService 创建引导服务
func NewOnboardingService(uow *repository.CafeUnitOfWork, slugs *SlugAllocator) *OnboardingService {
	return &OnboardingService{uow: uow, slugs: slugs}
}

// Complete 完成引导
// 已拥有咖啡馆时返回 ErrCafeExists，此时用户的引导标记已为 true
func (s *OnboardingService) Complete(ctx context.Context, p *middleware.Principal, req *dto.OnboardingRequest) (*dto.CafeInfo, error) {
	if p == nil {
		return nil, ErrNotAuthenticated
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := dto.Validate(req); err != nil {
		return nil, ValidationError(err)
	}

	slug := req.Slug
	if slug == "" {
		slug = s.slugs.Base(req.Name)
	}

	cafe := &model.Cafe{
		Name:         req.Name,
		Slug:         slug,
		OwnerID:      p.UserID,
		Address:      trimOptional(req.Address),
		City:         trimOptional(req.City),
		Country:      trimOptional(req.Country),
		Phone:        trimOptional(req.Phone),
		Timezone:     trimOptional(req.Timezone),
		OpeningHours: trimOptional(req.OpeningHours),
		PosEnabled:   boolOr(req.PosEnabled, true),
	}

	ctx = withAudit(ctx, p)
	err := s.uow.Transaction(ctx, func(uow *repository.CafeUnitOfWork) error {
		existing, err := uow.Cafes.GetByOwner(ctx, p.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrCafeExists
		}

		if err := uow.Cafes.Create(ctx, cafe); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCafeExists
			}
			return err
		}
		return uow.Users.SetOnboarded(ctx, p.UserID, true)
	})
	if err != nil {
		if errors.Is(err, ErrCafeExists) {
			// 修复历史上“有咖啡馆但未标记引导”的用户
			_ = s.uow.Users.SetOnboarded(ctx, p.UserID, true)
			return nil, ErrCafeExists
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, storeErr(err)
	}

	return toCafeInfo(cafe), nil
}
