package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ==================== 归属链 ====================

// EntityKind 可鉴权的实体类型
type EntityKind string

const (
	EntityCafe       EntityKind = "cafe"
	EntityMenuItem   EntityKind = "menu_item"
	EntityIngredient EntityKind = "ingredient"
	EntitySupplier   EntityKind = "supplier"
)

// ownerChain 从目标表向上 LEFT JOIN 到 cafes
type ownerChain struct {
	table string
	joins []string
}

var ownerChains = map[EntityKind]ownerChain{
	EntityCafe: {table: "cafes"},
	EntityMenuItem: {
		table: "menu_items",
		joins: []string{
			"LEFT JOIN cafes ON cafes.id = menu_items.cafe_id",
		},
	},
	EntityIngredient: {
		table: "ingredients",
		joins: []string{
			"LEFT JOIN menu_items ON menu_items.id = ingredients.menu_item_id",
			"LEFT JOIN cafes ON cafes.id = menu_items.cafe_id",
		},
	},
	EntitySupplier: {
		table: "suppliers",
		joins: []string{
			"LEFT JOIN ingredients ON ingredients.id = suppliers.ingredient_id",
			"LEFT JOIN menu_items ON menu_items.id = ingredients.menu_item_id",
			"LEFT JOIN cafes ON cafes.id = menu_items.cafe_id",
		},
	},
}

// OwnerRef 归属解析结果；链路断裂时 CafeID / OwnerID 为 nil
type OwnerRef struct {
	TargetID int64
	CafeID   *int64
	OwnerID  *string
}

// OwnershipRepository 归属查询
type OwnershipRepository interface {
	// ResolveOwner 目标行不存在返回 nil, nil
	ResolveOwner(ctx context.Context, kind EntityKind, id int64) (*OwnerRef, error)
}

type ownershipRepository struct {
	db *gorm.DB
}

// NewOwnershipRepository 创建归属查询仓库
func NewOwnershipRepository(db *gorm.DB) OwnershipRepository {
	return &ownershipRepository{db: db}
}

func (r *ownershipRepository) ResolveOwner(ctx context.Context, kind EntityKind, id int64) (*OwnerRef, error) {
	chain, ok := ownerChains[kind]
	if !ok {
		return nil, fmt.Errorf("未知实体类型: %s", kind)
	}

	query := r.db.WithContext(ctx).
		Table(chain.table).
		Select(chain.table + ".id AS target_id, cafes.id AS cafe_id, cafes.owner_id AS owner_id")
	for _, join := range chain.joins {
		query = query.Joins(join)
	}

	var ref OwnerRef
	res := query.Where(chain.table+".id = ?", id).Limit(1).Scan(&ref)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &ref, nil
}
