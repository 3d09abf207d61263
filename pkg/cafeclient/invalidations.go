package cafeclient

// ==================== 写操作的失效关系 ====================
// 每个写操作列出其改动的行所影响的全部键，包括派生的聚合列表

func invalidateCafe() []Key {
	return []Key{KeyCafeRoot()}
}

func invalidateMenuItemCreated(cafeID int64) []Key {
	return cafeAggregates(cafeID, "menu")
}

// 删除菜单项会级联删除配料与供应商
func invalidateMenuItemDeleted(cafeID, itemID int64) []Key {
	keys := []Key{KeyMenuItem(itemID), KeyIngredientRoot()}
	return append(keys, cafeAggregates(cafeID, "menu", "ingredients", "suppliers")...)
}

func invalidateIngredientAdded(cafeID int64, slug string) []Key {
	return append([]Key{KeyIngredient(slug)}, cafeAggregates(cafeID, "ingredients")...)
}

// 删除配料会级联删除其供应商
func invalidateIngredientDeleted(cafeID int64, slug string) []Key {
	return append([]Key{KeyIngredient(slug)}, cafeAggregates(cafeID, "ingredients", "suppliers")...)
}

// 配料可按 slug 或名称引用，同一配料的供应商列表可能缓存在多个键下
func invalidateSupplierCreated(cafeID int64) []Key {
	return append([]Key{KeyIngredientSuppliers(Wildcard)}, cafeAggregates(cafeID, "suppliers")...)
}

// 客户端不知道供应商所属配料，失效全部配料下的供应商列表
func invalidateSupplierDeleted(cafeID, supplierID int64) []Key {
	return append([]Key{KeySupplier(supplierID), KeyIngredientRoot()}, cafeAggregates(cafeID, "suppliers")...)
}

func invalidateEmployeeCreated() []Key {
	return []Key{KeyEmployees()}
}

func invalidateEmployeeDeleted(employeeID int64) []Key {
	return []Key{KeyEmployees(), KeyEmployee(employeeID)}
}

// cafeAggregates 咖啡馆 ID 未知 (<= 0) 时用通配段覆盖所有咖啡馆
func cafeAggregates(cafeID int64, resources ...string) []Key {
	keys := make([]Key, 0, len(resources))
	for _, r := range resources {
		if cafeID > 0 {
			keys = append(keys, Key{"cafe", id(cafeID), r})
		} else {
			keys = append(keys, keyAnyCafe(r))
		}
	}
	return keys
}
