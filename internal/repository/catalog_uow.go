package repository

import (
	"context"

	"gorm.io/gorm"
)

// CatalogUnitOfWork 菜单目录工作单元（菜单项 / 配料 / 供应商级联删除）
type CatalogUnitOfWork struct {
	db          *gorm.DB
	MenuItems   MenuItemRepository
	Ingredients IngredientRepository
	Suppliers   SupplierRepository
}

// NewCatalogUnitOfWork 创建工作单元
func NewCatalogUnitOfWork(db *gorm.DB) *CatalogUnitOfWork {
	return &CatalogUnitOfWork{
		db:          db,
		MenuItems:   NewMenuItemRepository(db),
		Ingredients: NewIngredientRepository(db),
		Suppliers:   NewSupplierRepository(db),
	}
}

// Transaction 执行事务
func (u *CatalogUnitOfWork) Transaction(ctx context.Context, fn func(uow *CatalogUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &CatalogUnitOfWork{
			db:          tx,
			MenuItems:   NewMenuItemRepository(tx),
			Ingredients: NewIngredientRepository(tx),
			Suppliers:   NewSupplierRepository(tx),
		}
		return fn(txUow)
	})
}

// DeleteMenuItemCascade 删除菜单项及其配料、供应商
func (u *CatalogUnitOfWork) DeleteMenuItemCascade(ctx context.Context, menuItemID int64) error {
	return u.Transaction(ctx, func(uow *CatalogUnitOfWork) error {
		ids, err := uow.Ingredients.IDsByMenuItem(ctx, menuItemID)
		if err != nil {
			return err
		}
		if err := uow.Suppliers.DeleteByIngredients(ctx, ids); err != nil {
			return err
		}
		if err := uow.Ingredients.DeleteByMenuItem(ctx, menuItemID); err != nil {
			return err
		}
		return uow.MenuItems.Delete(ctx, menuItemID)
	})
}

// DeleteIngredientCascade 删除配料及其供应商
func (u *CatalogUnitOfWork) DeleteIngredientCascade(ctx context.Context, ingredientID int64) error {
	return u.Transaction(ctx, func(uow *CatalogUnitOfWork) error {
		if err := uow.Suppliers.DeleteByIngredients(ctx, []int64{ingredientID}); err != nil {
			return err
		}
		return uow.Ingredients.Delete(ctx, ingredientID)
	})
}
