package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cafe_admin_v1/internal/model"
)

// SupplierListLimit 单个配料的供应商列表上限
const SupplierListLimit = 200

// SupplierRow 供应商 + 所属配料信息
type SupplierRow struct {
	model.Supplier
	IngredientName string
	IngredientSlug string
}

// SupplierRepository 供应商仓库接口
type SupplierRepository interface {
	Create(ctx context.Context, supplier *model.Supplier) error
	GetByID(ctx context.Context, id int64) (*model.Supplier, error)
	ExistsSlug(ctx context.Context, ingredientID int64, slug string) (bool, error)
	// ListByIngredient 首选供应商在前
	ListByIngredient(ctx context.Context, ingredientID int64, limit int) ([]model.Supplier, error)
	// ListByCafe 咖啡馆 -> 菜单项 -> 配料 -> 供应商
	ListByCafe(ctx context.Context, cafeID int64) ([]SupplierRow, error)
	Delete(ctx context.Context, id int64) error
	DeleteByIngredients(ctx context.Context, ingredientIDs []int64) error
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository 创建供应商仓库
func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *model.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *supplierRepository) GetByID(ctx context.Context, id int64) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.WithContext(ctx).First(&supplier, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) ExistsSlug(ctx context.Context, ingredientID int64, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Supplier{}).
		Where("ingredient_id = ? AND slug = ?", ingredientID, slug).
		Count(&count).Error
	return count > 0, err
}

var preferredFirst = []clause.OrderByColumn{
	{Column: clause.Column{Table: "suppliers", Name: "preferred"}, Desc: true},
	{Column: clause.Column{Table: "suppliers", Name: "created_at"}, Desc: true},
	{Column: clause.Column{Table: "suppliers", Name: "id"}, Desc: true},
}

func (r *supplierRepository) ListByIngredient(ctx context.Context, ingredientID int64, limit int) ([]model.Supplier, error) {
	if limit <= 0 || limit > SupplierListLimit {
		limit = SupplierListLimit
	}

	var suppliers []model.Supplier
	err := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Clauses(clause.OrderBy{Columns: preferredFirst}).
		Limit(limit).
		Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepository) ListByCafe(ctx context.Context, cafeID int64) ([]SupplierRow, error) {
	var rows []SupplierRow
	err := r.db.WithContext(ctx).
		Model(&model.Supplier{}).
		Select("suppliers.*, ingredients.name AS ingredient_name, ingredients.slug AS ingredient_slug").
		Joins("JOIN ingredients ON ingredients.id = suppliers.ingredient_id").
		Joins("JOIN menu_items ON menu_items.id = ingredients.menu_item_id").
		Joins("JOIN cafes ON cafes.id = menu_items.cafe_id").
		Where("cafes.id = ?", cafeID).
		Clauses(clause.OrderBy{Columns: preferredFirst}).
		Scan(&rows).Error
	return rows, err
}

func (r *supplierRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Supplier{}, id).Error
}

func (r *supplierRepository) DeleteByIngredients(ctx context.Context, ingredientIDs []int64) error {
	if len(ingredientIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("ingredient_id IN ?", ingredientIDs).Delete(&model.Supplier{}).Error
}
