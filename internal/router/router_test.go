package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cafe_admin_v1/internal/controller"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/model"
	"cafe_admin_v1/internal/repository"
	"cafe_admin_v1/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	if err := middleware.RegisterAuditCallbacks(db); err != nil {
		t.Fatalf("注册审计回调失败: %v", err)
	}
	return db
}

// NewTestEngine 以真实依赖组装路由
func newTestEngine(t *testing.T, limiter *middleware.KeyedRateLimiter) *gin.Engine {
	db := setupTestDB(t)

	users := repository.NewUserRepository(db)
	sessions := repository.NewSessionRepository(db)
	cafes := repository.NewCafeRepository(db)
	catalog := repository.NewCatalogUnitOfWork(db)
	gate := service.NewOwnershipGate(repository.NewOwnershipRepository(db), cafes)
	slugs := service.NewSlugAllocator()

	ctl := &Controllers{
		Auth:       controller.NewAuthController(service.NewAuthService(users, sessions)),
		Cafe:       controller.NewCafeController(service.NewCafeService(gate, cafes), service.NewOnboardingService(repository.NewCafeUnitOfWork(db), slugs)),
		Menu:       controller.NewMenuController(service.NewMenuService(gate, catalog, slugs)),
		Ingredient: controller.NewIngredientController(service.NewIngredientService(gate, catalog, slugs)),
		Supplier:   controller.NewSupplierController(service.NewSupplierService(gate, catalog, slugs)),
		Employee:   controller.NewEmployeeController(service.NewEmployeeService(repository.NewEmployeeRepository(db))),
	}

	return SetupRouter(ctl, Options{
		Resolver:     middleware.NewSessionResolver(sessions, users),
		LoginLimiter: limiter,
		Metrics:      middleware.NewMetrics(),
	})
}

func performRequest(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body = %s", w.Body.String())
	return resp
}

// login 注册并登录，返回令牌
func login(t *testing.T, r http.Handler, name, email string) string {
	w := performRequest(r, "POST", "/api/auth/signup", "", gin.H{"name": name, "email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = performRequest(r, "POST", "/api/auth/login", "", gin.H{"email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

// onboard 登录并创建咖啡馆，返回令牌与咖啡馆 ID
func onboard(t *testing.T, r http.Handler, name, email string) (string, int64) {
	token := login(t, r, name, email)
	w := performRequest(r, "POST", "/api/onboarding/complete", token, gin.H{"name": name + " Cafe"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cafe := decode(t, w)["cafe"].(map[string]interface{})
	return token, int64(cafe["id"].(float64))
}

// ==================== 测试用例 ====================

func TestHealthAndMetrics(t *testing.T) {
	r := newTestEngine(t, nil)

	w := performRequest(r, "GET", "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cafe_http_requests_total")
}

func TestAuthRequired(t *testing.T) {
	r := newTestEngine(t, nil)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/cafe"},
		{"GET", "/api/auth/me"},
		{"GET", "/api/cafe/1/menu"},
		{"GET", "/api/cafe/1/suppliers"},
		{"POST", "/api/menu/create"},
		{"GET", "/api/ingredients/milk/suppliers"},
		{"GET", "/api/suppliers/1"},
		{"GET", "/api/employees"},
		{"POST", "/api/onboarding/complete"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := performRequest(r, p.method, p.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			resp := decode(t, w)
			assert.Equal(t, false, resp["ok"])
			assert.Equal(t, "not_authenticated", resp["error"])
		})
	}

	// 伪造令牌
	w := performRequest(r, "GET", "/api/cafe", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionCookieAndLogout(t *testing.T) {
	r := newTestEngine(t, nil)
	performRequest(r, "POST", "/api/auth/signup", "", gin.H{"name": "Ana", "email": "ana@example.com", "password": "password123"})

	w := performRequest(r, "POST", "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.GetSessionConfig().CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// Cookie 也可作为凭证
	req, _ := http.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(cookies[0])
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code)
	user := decode(t, me)["user"].(map[string]interface{})
	assert.Equal(t, "ana@example.com", user["email"])
	assert.Equal(t, false, user["has_onboarded"])

	token := decode(t, w)["token"].(string)
	w = performRequest(r, "POST", "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 会话已撤销
	w = performRequest(r, "GET", "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRateLimit(t *testing.T) {
	r := newTestEngine(t, middleware.NewKeyedRateLimiter(0.001, 2))

	for i := 0; i < 2; i++ {
		w := performRequest(r, "POST", "/api/auth/login", "", gin.H{"email": "x@example.com", "password": "password123"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := performRequest(r, "POST", "/api/auth/login", "", gin.H{"email": "x@example.com", "password": "password123"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "too_many_requests", decode(t, w)["error"])
}

func TestCafeEndpoints(t *testing.T) {
	r := newTestEngine(t, nil)
	token := login(t, r, "Ana", "ana@example.com")

	w := performRequest(r, "GET", "/api/cafe", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["ok"])
	assert.Nil(t, resp["cafe"])

	w = performRequest(r, "PUT", "/api/cafe", token, gin.H{"name": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(r, "POST", "/api/onboarding/complete", token, gin.H{"name": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp = decode(t, w)
	assert.Equal(t, "validation", resp["error"])
	assert.Contains(t, resp["details"], "name")

	w = performRequest(r, "POST", "/api/onboarding/complete", token, gin.H{"name": "Blue Bottle", "pos_enabled": false})
	require.Equal(t, http.StatusOK, w.Code)
	cafe := decode(t, w)["cafe"].(map[string]interface{})
	assert.Equal(t, "blue-bottle", cafe["slug"])
	assert.Equal(t, false, cafe["pos_enabled"])

	w = performRequest(r, "POST", "/api/onboarding/complete", token, gin.H{"name": "Second"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "cafe_exists", decode(t, w)["error"])

	w = performRequest(r, "PUT", "/api/cafe", token, gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name_required", decode(t, w)["error"])

	w = performRequest(r, "PUT", "/api/cafe", token, gin.H{"name": "Renamed", "phone": "+351 21"})
	require.Equal(t, http.StatusOK, w.Code)
	cafe = decode(t, w)["cafe"].(map[string]interface{})
	assert.Equal(t, "Renamed", cafe["name"])
	assert.Equal(t, "+351 21", cafe["phone"])
}

func TestCatalogFlow(t *testing.T) {
	r := newTestEngine(t, nil)
	token, cafeID := onboard(t, r, "Ana", "ana@example.com")

	w := performRequest(r, "POST", "/api/menu/create", token, gin.H{"name": "Latte", "price": 3.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := decode(t, w)["item"].(map[string]interface{})
	assert.Equal(t, "latte", item["slug"])
	assert.Equal(t, float64(350), item["price_cents"])
	assert.Equal(t, 3.5, item["price"])

	w = performRequest(r, "POST", "/api/menu/create", token, gin.H{"name": "Latte", "price": 4})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "latte-1", decode(t, w)["item"].(map[string]interface{})["slug"])

	w = performRequest(r, "POST", "/api/menu/items/ingredients/latte", token, gin.H{"name": "Milk", "cost": 0.4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(40), decode(t, w)["ingredient"].(map[string]interface{})["cost_cents"])

	w = performRequest(r, "POST", "/api/ingredients/milk/suppliers", token, gin.H{"name": "DairyCo", "unit_price": 0.35, "preferred": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	supplierID := int64(decode(t, w)["supplier"].(map[string]interface{})["id"].(float64))

	w = performRequest(r, "GET", fmt.Sprintf("/api/cafe/%d/suppliers", cafeID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["suppliers"], 1)

	w = performRequest(r, "GET", fmt.Sprintf("/api/cafe/%d/menu", cafeID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"], 2)

	w = performRequest(r, "GET", fmt.Sprintf("/api/cafe/%d/ingredients", cafeID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["ingredients"], 1)

	w = performRequest(r, "GET", "/api/ingredient/Milk", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "DELETE", fmt.Sprintf("/api/suppliers/%d", supplierID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "GET", "/api/ingredients/milk/suppliers", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["suppliers"])

	w = performRequest(r, "GET", fmt.Sprintf("/api/suppliers/%d", supplierID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidationAndBadIDs(t *testing.T) {
	r := newTestEngine(t, nil)
	token, cafeID := onboard(t, r, "Ana", "ana@example.com")

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"负价格", "POST", "/api/menu/create", gin.H{"name": "Latte", "price": -1}, 400, "validation"},
		{"价格类型错误", "POST", "/api/menu/create", gin.H{"name": "Latte", "price": "abc"}, 400, "validation"},
		{"价格超出上限", "POST", "/api/menu/create", gin.H{"name": "Latte", "price": 2e17}, 400, "validation"},
		{"咖啡馆 ID 非数字", "GET", "/api/cafe/abc/suppliers", nil, 400, "invalid_cafe_id"},
		{"供应商 ID 非数字", "GET", "/api/suppliers/abc", nil, 400, "invalid_id"},
		{"菜单项不存在", "POST", "/api/menu/items/ingredients/nothing", gin.H{"name": "Milk"}, 404, "item_not_found"},
		{"配料不存在", "GET", "/api/ingredients/nothing/suppliers", nil, 404, "ingredient_not_found"},
		{"员工邮箱非法", "POST", "/api/employees", gin.H{"first_name": "A", "last_name": "B", "email": "bad", "role": "barista"}, 400, "validation"},
		{"员工不存在", "DELETE", "/api/employees/999", nil, 404, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(r, tt.method, tt.path, token, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			resp := decode(t, w)
			assert.Equal(t, false, resp["ok"])
			assert.Equal(t, tt.code, resp["error"])
		})
	}

	// 金额只接受 JSON 数字
	w := performRequest(r, "POST", "/api/menu/create", token, gin.H{"name": "Latte", "price": "3.50"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]interface{}{"price": "type"}, decode(t, w)["details"])

	// 越界金额不会以回绕后的值入库
	w = performRequest(r, "GET", fmt.Sprintf("/api/cafe/%d/menu", cafeID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["items"])
}

func TestCrossTenantHTTP(t *testing.T) {
	r := newTestEngine(t, nil)
	alice, aliceCafe := onboard(t, r, "Alice", "alice@example.com")
	bob, _ := onboard(t, r, "Bob", "bob@example.com")

	w := performRequest(r, "POST", "/api/menu/create", alice, gin.H{"name": "Mocha", "price": 4})
	require.Equal(t, http.StatusOK, w.Code)
	itemID := int64(decode(t, w)["item"].(map[string]interface{})["id"].(float64))

	checks := []struct {
		method string
		path   string
		body   interface{}
	}{
		{"GET", fmt.Sprintf("/api/cafe/%d/menu", aliceCafe), nil},
		{"GET", fmt.Sprintf("/api/cafe/%d/ingredients", aliceCafe), nil},
		{"GET", fmt.Sprintf("/api/cafe/%d/suppliers", aliceCafe), nil},
		{"GET", fmt.Sprintf("/api/menu/item/%d", itemID), nil},
		{"DELETE", fmt.Sprintf("/api/menu/item/%d", itemID), nil},
		{"POST", "/api/menu/items/ingredients/mocha", gin.H{"name": "Sugar"}},
	}

	for _, c := range checks {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			w := performRequest(r, c.method, c.path, bob, c.body)
			assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
			assert.Equal(t, "forbidden", decode(t, w)["error"])
		})
	}

	// Alice 的菜单项仍在
	w = performRequest(r, "GET", fmt.Sprintf("/api/menu/item/%d", itemID), alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeesHTTP(t *testing.T) {
	r := newTestEngine(t, nil)
	token := login(t, r, "Ana", "ana@example.com")

	w := performRequest(r, "POST", "/api/employees", token, gin.H{"first_name": "Joao", "last_name": "Silva", "email": "joao@example.com", "role": "barista"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	emp := decode(t, w)["employee"].(map[string]interface{})
	assert.NotEmpty(t, emp["created_by"])

	w = performRequest(r, "GET", "/api/employees", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["employees"], 1)

	path := fmt.Sprintf("/api/employees/%d", int64(emp["id"].(float64)))
	w = performRequest(r, "GET", path, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "DELETE", path, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "GET", path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
