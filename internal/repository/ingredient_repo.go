package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"cafe_admin_v1/internal/model"
)

// IngredientListLimit 咖啡馆配料列表上限
const IngredientListLimit = 2000

// IngredientRow 配料 + 所属菜单项名称
type IngredientRow struct {
	model.Ingredient
	MenuItemName string
}

// IngredientRepository 配料仓库接口
type IngredientRepository interface {
	Create(ctx context.Context, ing *model.Ingredient) error
	GetByID(ctx context.Context, id int64) (*model.Ingredient, error)
	// FindByRef 在咖啡馆内按 slug 或名称（忽略大小写）查找，多条时取最早创建的
	FindByRef(ctx context.Context, cafeID int64, ref string) (*model.Ingredient, error)
	ExistsRefAnywhere(ctx context.Context, ref string) (bool, error)
	ExistsSlugInCafe(ctx context.Context, cafeID int64, slug string) (bool, error)
	ListByCafe(ctx context.Context, cafeID int64, limit int) ([]IngredientRow, error)
	IDsByMenuItem(ctx context.Context, menuItemID int64) ([]int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteByMenuItem(ctx context.Context, menuItemID int64) error
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository 创建配料仓库
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ctx context.Context, ing *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(ing).Error
}

func (r *ingredientRepository) GetByID(ctx context.Context, id int64) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := r.db.WithContext(ctx).First(&ing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepository) FindByRef(ctx context.Context, cafeID int64, ref string) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := r.db.WithContext(ctx).
		Where("cafe_id = ?", cafeID).
		Where("slug = ? OR LOWER(name) = ?", ref, strings.ToLower(ref)).
		Order("id ASC").
		First(&ing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepository) ExistsRefAnywhere(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Ingredient{}).
		Where("slug = ? OR LOWER(name) = ?", ref, strings.ToLower(ref)).
		Count(&count).Error
	return count > 0, err
}

func (r *ingredientRepository) ExistsSlugInCafe(ctx context.Context, cafeID int64, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Ingredient{}).
		Where("cafe_id = ? AND slug = ?", cafeID, slug).
		Count(&count).Error
	return count > 0, err
}

// ListByCafe 关联菜单项名称，按创建时间倒序
func (r *ingredientRepository) ListByCafe(ctx context.Context, cafeID int64, limit int) ([]IngredientRow, error) {
	if limit <= 0 || limit > IngredientListLimit {
		limit = IngredientListLimit
	}

	var rows []IngredientRow
	err := r.db.WithContext(ctx).
		Model(&model.Ingredient{}).
		Select("ingredients.*, menu_items.name AS menu_item_name").
		Joins("JOIN menu_items ON menu_items.id = ingredients.menu_item_id").
		Where("ingredients.cafe_id = ?", cafeID).
		Order("ingredients.created_at DESC").
		Order("ingredients.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *ingredientRepository) IDsByMenuItem(ctx context.Context, menuItemID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.Ingredient{}).
		Where("menu_item_id = ?", menuItemID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *ingredientRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Ingredient{}, id).Error
}

func (r *ingredientRepository) DeleteByMenuItem(ctx context.Context, menuItemID int64) error {
	return r.db.WithContext(ctx).Where("menu_item_id = ?", menuItemID).Delete(&model.Ingredient{}).Error
}
