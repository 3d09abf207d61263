package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cafe_admin_v1/internal/model"
)

// MenuItemRepository 菜单项仓库接口
type MenuItemRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	GetByID(ctx context.Context, id int64) (*model.MenuItem, error)
	GetBySlug(ctx context.Context, cafeID int64, slug string) (*model.MenuItem, error)
	ExistsSlug(ctx context.Context, cafeID int64, slug string) (bool, error)
	// ExistsSlugAnywhere 任意咖啡馆下是否存在该 slug（用于区分 403 / 404）
	ExistsSlugAnywhere(ctx context.Context, slug string) (bool, error)
	ListByCafe(ctx context.Context, cafeID int64) ([]model.MenuItem, error)
	Delete(ctx context.Context, id int64) error
}

type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository 创建菜单项仓库
func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuItemRepository) GetByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepository) GetBySlug(ctx context.Context, cafeID int64, slug string) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).
		Where("cafe_id = ? AND slug = ?", cafeID, slug).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepository) ExistsSlug(ctx context.Context, cafeID int64, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.MenuItem{}).
		Where("cafe_id = ? AND slug = ?", cafeID, slug).
		Count(&count).Error
	return count > 0, err
}

func (r *menuItemRepository) ExistsSlugAnywhere(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.MenuItem{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

// ListByCafe 按创建时间倒序
func (r *menuItemRepository) ListByCafe(ctx context.Context, cafeID int64) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).
		Where("cafe_id = ?", cafeID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error
	return items, err
}

func (r *menuItemRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.MenuItem{}, id).Error
}
