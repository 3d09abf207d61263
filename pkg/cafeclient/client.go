// Package cafeclient 咖啡馆后台的 HTTP 客户端，登录后附带会话级读穿缓存
package cafeclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"cafe_admin_v1/internal/api/dto"
)

// APIError 服务端返回的错误
type APIError struct {
	Status  int               `json:"-"`
	Code    string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cafeclient: %d %s: %s", e.Status, e.Code, e.Message)
}

// Client 类型化的 API 客户端，可并发使用
type Client struct {
	http       *resty.Client
	staleAfter time.Duration

	mu     sync.RWMutex
	token  string
	cache  *Cache
	cafeID int64 // 最近一次读到的当前咖啡馆
}

// Option 客户端选项
type Option func(*Client)

// WithStaleAfter 设置缓存陈旧窗口
func WithStaleAfter(d time.Duration) Option {
	return func(c *Client) { c.staleAfter = d }
}

// WithTimeout 设置请求超时
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// New 创建客户端，baseURL 形如 http://localhost:8080
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")+"/api").
			SetTimeout(10*time.Second).
			SetHeader("Accept", "application/json"),
		staleAfter: DefaultStaleAfter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cache 当前会话的缓存，未登录时为 nil
func (c *Client) Cache() *Cache {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache
}

// Token 当前会话令牌
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ==================== 认证 ====================

// Signup 注册
func (c *Client) Signup(ctx context.Context, req dto.SignupRequest) (*dto.UserInfo, error) {
	var out struct {
		User *dto.UserInfo `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Login 登录并建立新的会话缓存
func (c *Client) Login(ctx context.Context, email, password string) (*dto.UserInfo, error) {
	var out dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.token = out.Token
	c.cache = NewCache(c.staleAfter)
	c.cafeID = 0
	c.mu.Unlock()
	return out.User, nil
}

// Logout 注销并丢弃缓存，服务端失败时本地状态也会清除
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)

	c.mu.Lock()
	if c.cache != nil {
		c.cache.Purge()
	}
	c.token = ""
	c.cache = nil
	c.cafeID = 0
	c.mu.Unlock()
	return err
}

// Me 当前用户
func (c *Client) Me(ctx context.Context) (*dto.UserInfo, error) {
	var out struct {
		User *dto.UserInfo `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// ==================== 咖啡馆 ====================

// CurrentCafe 当前用户的咖啡馆，尚未创建时返回 nil
func (c *Client) CurrentCafe(ctx context.Context) (*dto.CafeInfo, error) {
	cafe, err := cached(ctx, c, KeyCurrentCafe(), func(ctx context.Context) (*dto.CafeInfo, error) {
		var out struct {
			Cafe *dto.CafeInfo `json:"cafe"`
		}
		err := c.do(ctx, http.MethodGet, "/cafe", nil, &out)
		return out.Cafe, err
	})
	if err == nil {
		c.rememberCafe(cafe)
	}
	return cafe, err
}

// UpdateCafe 更新咖啡馆
func (c *Client) UpdateCafe(ctx context.Context, req dto.UpdateCafeRequest) (*dto.CafeInfo, error) {
	var out struct {
		Cafe *dto.CafeInfo `json:"cafe"`
	}
	if err := c.do(ctx, http.MethodPut, "/cafe", req, &out); err != nil {
		return nil, err
	}
	c.invalidate(invalidateCafe())
	c.rememberCafe(out.Cafe)
	return out.Cafe, nil
}

// CompleteOnboarding 完成引导
func (c *Client) CompleteOnboarding(ctx context.Context, req dto.OnboardingRequest) (*dto.CafeInfo, error) {
	var out struct {
		Cafe *dto.CafeInfo `json:"cafe"`
	}
	if err := c.do(ctx, http.MethodPost, "/onboarding/complete", req, &out); err != nil {
		return nil, err
	}
	c.invalidate(invalidateCafe())
	c.rememberCafe(out.Cafe)
	return out.Cafe, nil
}

// ==================== 菜单 ====================

// MenuItems 咖啡馆菜单
func (c *Client) MenuItems(ctx context.Context, cafeID int64) ([]dto.MenuItemInfo, error) {
	return cached(ctx, c, KeyCafeMenu(cafeID), func(ctx context.Context) ([]dto.MenuItemInfo, error) {
		var out struct {
			Items []dto.MenuItemInfo `json:"items"`
		}
		err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cafe/%d/menu", cafeID), nil, &out)
		return out.Items, err
	})
}

// MenuItem 菜单项详情
func (c *Client) MenuItem(ctx context.Context, itemID int64) (*dto.MenuItemInfo, error) {
	return cached(ctx, c, KeyMenuItem(itemID), func(ctx context.Context) (*dto.MenuItemInfo, error) {
		var out struct {
			Item *dto.MenuItemInfo `json:"item"`
		}
		err := c.do(ctx, http.MethodGet, fmt.Sprintf("/menu/item/%d", itemID), nil, &out)
		return out.Item, err
	})
}

// CreateMenuItem 创建菜单项
func (c *Client) CreateMenuItem(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemInfo, error) {
	var out struct {
		Item *dto.MenuItemInfo `json:"item"`
	}
	if err := c.do(ctx, http.MethodPost, "/menu/create", req, &out); err != nil {
		return nil, err
	}
	c.invalidate(invalidateMenuItemCreated(out.Item.CafeID))
	return out.Item, nil
}

// DeleteMenuItem 删除菜单项（级联删除配料与供应商）
func (c *Client) DeleteMenuItem(ctx context.Context, itemID int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/menu/item/%d", itemID), nil, nil); err != nil {
		return err
	}
	c.invalidate(invalidateMenuItemDeleted(c.knownCafe(), itemID))
	return nil
}

// ==================== 配料 ====================

// Ingredients 咖啡馆全部配料
func (c *Client) Ingredients(ctx context.Context, cafeID int64) ([]dto.IngredientInfo, error) {
	return cached(ctx, c, KeyCafeIngredients(cafeID), func(ctx context.Context) ([]dto.IngredientInfo, error) {
		var out struct {
			Ingredients []dto.IngredientInfo `json:"ingredients"`
		}
		err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cafe/%d/ingredients", cafeID), nil, &out)
		return out.Ingredients, err
	})
}

// Ingredient 按 slug 或名称查询配料
func (c *Client) Ingredient(ctx context.Context, ref string) (*dto.IngredientInfo, error) {
	return cached(ctx, c, KeyIngredient(ref), func(ctx context.Context) (*dto.IngredientInfo, error) {
		var out struct {
			Ingredient *dto.IngredientInfo `json:"ingredient"`
		}
		err := c.do(ctx, http.MethodGet, "/ingredient/"+pathEscape(ref), nil, &out)
		return out.Ingredient, err
	})
}

// AddIngredient 为菜单项添加配料
func (c *Client) AddIngredient(ctx context.Context, menuItemSlug string, req dto.CreateIngredientRequest) (*dto.IngredientInfo, error) {
	var out struct {
		Ingredient *dto.IngredientInfo `json:"ingredient"`
	}
	if err := c.do(ctx, http.MethodPost, "/menu/items/ingredients/"+pathEscape(menuItemSlug), req, &out); err != nil {
		return nil, err
	}
	c.invalidate(invalidateIngredientAdded(c.knownCafe(), out.Ingredient.Slug))
	return out.Ingredient, nil
}

// DeleteIngredient 删除配料（级联删除供应商）
func (c *Client) DeleteIngredient(ctx context.Context, ref string) error {
	if err := c.do(ctx, http.MethodDelete, "/ingredient/"+pathEscape(ref), nil, nil); err != nil {
		return err
	}
	// ref 可能是名称，对应的 slug 键无法确定
	c.invalidate(append(invalidateIngredientDeleted(c.knownCafe(), ref), KeyIngredientRoot()))
	return nil
}

// ==================== 供应商 ====================

// Suppliers 咖啡馆全部供应商
func (c *Client) Suppliers(ctx context.Context, cafeID int64) ([]dto.SupplierInfo, error) {
	return cached(ctx, c, KeyCafeSuppliers(cafeID), func(ctx context.Context) ([]dto.SupplierInfo, error) {
		var out struct {
			Suppliers []dto.SupplierInfo `json:"suppliers"`
		}
		err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cafe/%d/suppliers", cafeID), nil, &out)
		return out.Suppliers, err
	})
}

// IngredientSuppliers 配料的供应商
func (c *Client) IngredientSuppliers(ctx context.Context, ref string) ([]dto.SupplierInfo, error) {
	return cached(ctx, c, KeyIngredientSuppliers(ref), func(ctx context.Context) ([]dto.SupplierInfo, error) {
		var out struct {
			Suppliers []dto.SupplierInfo `json:"suppliers"`
		}
		err := c.do(ctx, http.MethodGet, "/ingredients/"+pathEscape(ref)+"/suppliers", nil, &out)
		return out.Suppliers, err
	})
}

// Supplier 供应商详情
func (c *Client) Supplier(ctx context.Context, supplierID int64) (*dto.SupplierInfo, error) {
	return cached(ctx, c, KeySupplier(supplierID), func(ctx context.Context) (*dto.SupplierInfo, error) {
		var out struct {
			Supplier *dto.SupplierInfo `json:"supplier"`
		}
		err := c.do(ctx, http.MethodGet, fmt.Sprintf("/suppliers/%d", supplierID), nil, &out)
		return out.Supplier, err
	})
}

// CreateSupplier 为配料添加供应商
func (c *Client) CreateSupplier(ctx context.Context, ingredientRef string, req dto.CreateSupplierRequest) (*dto.SupplierInfo, error) {
	var out struct {
		Supplier *dto.SupplierInfo `json:"supplier"`
	}
	if err := c.do(ctx, http.MethodPost, "/ingredients/"+pathEscape(ingredientRef)+"/suppliers", req, &out); err != nil {
		return nil, err
	}
	c.invalidate(invalidateSupplierCreated(c.knownCafe()))
	return out.Supplier, nil
}

// DeleteSupplier 删除供应商
func (c *Client) DeleteSupplier(ctx context.Context, supplierID int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/suppliers/%d", supplierID), nil, nil); err != nil {
		return err
	}
	c.invalidate(invalidateSupplierDeleted(c.knownCafe(), supplierID))
	return nil
}

// ==================== 员工 ====================

// Employees 员工列表
func (c *Client) Employees(ctx context.Context) ([]dto.EmployeeInfo, error) {
	return cached(ctx, c, KeyEmployees(), func(ctx context.Context) ([]dto.EmployeeInfo, error) {
		var out struct {
			Employees []dto.EmployeeInfo `json:"employees"`
		}
		err := c.do(ctx, http.MethodGet, "/employees", nil, &out)
		return out.Employees, err
	})
}

// Employee 员工详情
func (c *Client) Employee(ctx context.Context, employeeID int64) (*dto.EmployeeInfo, error) {
	return cached(ctx, c, KeyEmployee(employeeID), func(ctx context.Context) (*dto.EmployeeInfo, error) {
		var out struct {
			Employee *dto.EmployeeInfo `json:"employee"`
		}
		err := c.do(ctx, http.MethodGet, fmt.Sprintf("/employees/%d", employeeID), nil, &out)
		return out.Employee, err
	})
}

// CreateEmployee 创建员工
func (c *Client) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.EmployeeInfo, error) {
	var out struct {
		Employee *dto.EmployeeInfo `json:"employee"`
	}
	if err := c.do(ctx, http.MethodPost, "/employees", req, &out); err != nil {
		return nil, err
	}
	c.invalidate(invalidateEmployeeCreated())
	return out.Employee, nil
}

// DeleteEmployee 删除员工
func (c *Client) DeleteEmployee(ctx context.Context, employeeID int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/employees/%d", employeeID), nil, nil); err != nil {
		return err
	}
	c.invalidate(invalidateEmployeeDeleted(employeeID))
	return nil
}

// ==================== 内部方法 ====================

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	req := c.http.R().
		SetContext(ctx).
		SetError(&APIError{})
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("cafeclient: %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr, ok := resp.Error().(*APIError)
		if !ok || apiErr.Code == "" {
			apiErr = &APIError{Code: "http_error", Message: resp.String()}
		}
		apiErr.Status = resp.StatusCode()
		return apiErr
	}
	return nil
}

// cached 有会话缓存时读穿，否则直接请求
func cached[T any](ctx context.Context, c *Client, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	cache := c.Cache()
	if cache == nil {
		return fetch(ctx)
	}
	return Get(ctx, cache, key, fetch)
}

func (c *Client) invalidate(keys []Key) {
	if cache := c.Cache(); cache != nil {
		cache.Invalidate(keys...)
	}
}

func (c *Client) rememberCafe(cafe *dto.CafeInfo) {
	if cafe == nil {
		return
	}
	c.mu.Lock()
	c.cafeID = cafe.ID
	c.mu.Unlock()
}

func (c *Client) knownCafe() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cafeID
}

func pathEscape(s string) string {
	return url.PathEscape(s)
}
