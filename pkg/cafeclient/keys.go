package cafeclient

import (
	"strconv"
	"strings"
)

// Wildcard 前缀中的通配段，匹配任意单个段
const Wildcard = "*"

// Key 缓存键，按段组织，如 cafe/12/menu
type Key []string

func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix 判断 k 是否位于 prefix 之下
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, seg := range prefix {
		if seg != Wildcard && seg != k[i] {
			return false
		}
	}
	return true
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

// ==================== 逻辑查询的键 ====================

func KeyCafeRoot() Key { return Key{"cafe"} }
func KeyCurrentCafe() Key { return Key{"cafe", "current"} }
func KeyCafeMenu(cafeID int64) Key { return Key{"cafe", id(cafeID), "menu"} }
func KeyCafeIngredients(cafeID int64) Key { return Key{"cafe", id(cafeID), "ingredients"} }
func KeyCafeSuppliers(cafeID int64) Key { return Key{"cafe", id(cafeID), "suppliers"} }

func KeyMenuItem(itemID int64) Key { return Key{"menu-item", id(itemID)} }

func KeyIngredientRoot() Key { return Key{"ingredient"} }
func KeyIngredient(slug string) Key { return Key{"ingredient", slug} }
func KeyIngredientSuppliers(slug string) Key { return Key{"ingredient", slug, "suppliers"} }
func KeySupplier(supplierID int64) Key { return Key{"supplier", id(supplierID)} }
func KeyEmployees() Key { return Key{"employees"} }
func KeyEmployee(employeeID int64) Key { return Key{"employee", id(employeeID)} }
func keyAnyCafe(resource string) Key { return Key{"cafe", Wildcard, resource} }
