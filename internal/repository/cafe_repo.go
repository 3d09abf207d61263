package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cafe_admin_v1/internal/model"
)

// ==================== CafeRepository 咖啡馆仓库 ====================

// CafeRepository 咖啡馆仓库接口
type CafeRepository interface {
	Create(ctx context.Context, cafe *model.Cafe) error
	GetByID(ctx context.Context, id int64) (*model.Cafe, error)
	GetByOwner(ctx context.Context, ownerID string) (*model.Cafe, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
}

type cafeRepository struct {
	db *gorm.DB
}

// NewCafeRepository 创建咖啡馆仓库
func NewCafeRepository(db *gorm.DB) CafeRepository {
	return &cafeRepository{db: db}
}

func (r *cafeRepository) Create(ctx context.Context, cafe *model.Cafe) error {
	return r.db.WithContext(ctx).Create(cafe).Error
}

// GetByID 不存在返回 nil, nil
func (r *cafeRepository) GetByID(ctx context.Context, id int64) (*model.Cafe, error) {
	var cafe model.Cafe
	err := r.db.WithContext(ctx).First(&cafe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cafe, nil
}

// GetByOwner 获取用户拥有的咖啡馆，不存在返回 nil, nil
func (r *cafeRepository) GetByOwner(ctx context.Context, ownerID string) (*model.Cafe, error) {
	var cafe model.Cafe
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&cafe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cafe, nil
}

// UpdateFields 按字段更新（map 形式以便写入 NULL）
func (r *cafeRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Cafe{BaseModel: model.BaseModel{ID: id}}).
		Updates(fields).Error
}

// ==================== 工作单元 ====================

// CafeUnitOfWork 引导流程工作单元：建咖啡馆 + 标记用户已引导，需在同一事务内
type CafeUnitOfWork struct {
	db    *gorm.DB
	Cafes CafeRepository
	Users UserRepository
}

// NewCafeUnitOfWork 创建工作单元
func NewCafeUnitOfWork(db *gorm.DB) *CafeUnitOfWork {
	return &CafeUnitOfWork{
		db:    db,
		Cafes: NewCafeRepository(db),
		Users: NewUserRepository(db),
	}
}

// Transaction 执行事务
func (u *CafeUnitOfWork) Transaction(ctx context.Context, fn func(uow *CafeUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &CafeUnitOfWork{
			db:    tx,
			Cafes: NewCafeRepository(tx),
			Users: NewUserRepository(tx),
		}
		return fn(txUow)
	})
}
