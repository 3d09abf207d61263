package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/model"
	"cafe_admin_v1/internal/repository"
	"cafe_admin_v1/pkg/utils"
)

// ==================== 测试辅助 ====================

type testEnv struct {
	db          *gorm.DB
	auth        *AuthService
	cafes       *CafeService
	onboarding  *OnboardingService
	menu        *MenuService
	ingredients *IngredientService
	suppliers   *SupplierService
	employees   *EmployeeService
}

func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	if err := middleware.RegisterAuditCallbacks(db); err != nil {
		t.Fatalf("注册审计回调失败: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupServiceTestDB(t)

	cafes := repository.NewCafeRepository(db)
	gate := NewOwnershipGate(repository.NewOwnershipRepository(db), cafes)
	catalog := repository.NewCatalogUnitOfWork(db)
	slugs := NewSlugAllocator()

	return &testEnv{
		db:          db,
		auth:        NewAuthService(repository.NewUserRepository(db), repository.NewSessionRepository(db)),
		cafes:       NewCafeService(gate, cafes),
		onboarding:  NewOnboardingService(repository.NewCafeUnitOfWork(db), slugs),
		menu:        NewMenuService(gate, catalog, slugs),
		ingredients: NewIngredientService(gate, catalog, slugs),
		suppliers:   NewSupplierService(gate, catalog, slugs),
		employees:   NewEmployeeService(repository.NewEmployeeRepository(db)),
	}
}

// signup 注册并返回对应主体
func (e *testEnv) signup(t *testing.T, name, email string) *middleware.Principal {
	user, err := e.auth.Signup(context.Background(), &dto.SignupRequest{Name: name, Email: email, Password: "password123"})
	require.NoError(t, err)
	return &middleware.Principal{UserID: user.ID, Email: user.Email, Name: user.Name, SessionID: "test-session"}
}

// owner 注册并完成引导
func (e *testEnv) owner(t *testing.T, name, email string) (*middleware.Principal, *dto.CafeInfo) {
	p := e.signup(t, name, email)
	cafe, err := e.onboarding.Complete(context.Background(), p, &dto.OnboardingRequest{Name: name + " Cafe"})
	require.NoError(t, err)
	return p, cafe
}

func (e *testEnv) createItem(t *testing.T, p *middleware.Principal, name string, price float64) *dto.MenuItemInfo {
	item, err := e.menu.Create(context.Background(), p, &dto.CreateMenuItemRequest{Name: name, Price: &price})
	require.NoError(t, err)
	return item
}

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
func strPtr(v string) *string     { return &v }

func assertKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, KindOf(err), "err = %v", err)
}

// ==================== 认证 ====================

func TestAuthService_SignupLoginMe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.signup(t, "Ana", "  Ana@Example.com ")
	assert.Equal(t, "ana@example.com", p.Email)

	_, err := env.auth.Signup(ctx, &dto.SignupRequest{Name: "Ana2", Email: "ana@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "wrong-password"}, SessionMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"}, SessionMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "password123"}, SessionMeta{IPAddress: "127.0.0.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.False(t, resp.User.HasOnboarded)

	claims, err := middleware.ParseSessionToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, claims.Subject)

	session, err := repository.NewSessionRepository(env.db).Get(ctx, claims.ID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "127.0.0.1", session.IPAddress)

	// 注销后会话删除
	p.SessionID = claims.ID
	require.NoError(t, env.auth.Logout(ctx, p))
	session, err = repository.NewSessionRepository(env.db).Get(ctx, claims.ID)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestAuthService_SignupValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Signup(context.Background(), &dto.SignupRequest{Name: "Ana", Email: "not-an-email", Password: "short"})
	assertKind(t, err, KindInvalidInput)

	appErr := AsAppError(err)
	assert.Equal(t, "email", appErr.Fields["email"])
	assert.Equal(t, "min", appErr.Fields["password"])
}

// ==================== 引导 ====================

func TestOnboardingService_Complete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.signup(t, "Ana", "ana@example.com")

	cafe, err := env.onboarding.Complete(ctx, p, &dto.OnboardingRequest{Name: "  Blue Bottle  ", City: strPtr(" Lisbon ")})
	require.NoError(t, err)
	assert.Equal(t, "Blue Bottle", cafe.Name)
	assert.Equal(t, "blue-bottle", cafe.Slug)
	assert.Equal(t, "Lisbon", *cafe.City)
	assert.True(t, cafe.PosEnabled)
	assert.Equal(t, p.UserID, cafe.OwnerID)

	me, err := env.auth.Me(ctx, p)
	require.NoError(t, err)
	assert.True(t, me.HasOnboarded)

	// 第二次引导冲突，且不会产生第二家咖啡馆
	_, err = env.onboarding.Complete(ctx, p, &dto.OnboardingRequest{Name: "Other"})
	assert.ErrorIs(t, err, ErrCafeExists)
	assert.Equal(t, KindConflict, KindOf(err))

	var count int64
	env.db.Model(&model.Cafe{}).Where("owner_id = ?", p.UserID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOnboardingService_LongNameSlug(t *testing.T) {
	env := newTestEnv(t)
	p := env.signup(t, "Ana", "ana@example.com")

	cafe, err := env.onboarding.Complete(context.Background(), p, &dto.OnboardingRequest{Name: strings.Repeat("a", 300)})
	require.NoError(t, err)
	assert.Len(t, cafe.Slug, utils.SlugMaxLength)
}

func TestOnboardingService_Validation(t *testing.T) {
	env := newTestEnv(t)
	p := env.signup(t, "Ana", "ana@example.com")

	tests := []struct {
		name  string
		req   dto.OnboardingRequest
		field string
	}{
		{"名称过短", dto.OnboardingRequest{Name: "A"}, "name"},
		{"名称为空白", dto.OnboardingRequest{Name: "   "}, "name"},
		{"slug 含大写", dto.OnboardingRequest{Name: "Cafe", Slug: "Bad_Slug"}, "slug"},
		{"slug 过长", dto.OnboardingRequest{Name: "Cafe", Slug: strings.Repeat("a", 321)}, "slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.onboarding.Complete(context.Background(), p, &tt.req)
			assertKind(t, err, KindInvalidInput)
			assert.Contains(t, AsAppError(err).Fields, tt.field)
		})
	}

	me, err := env.auth.Me(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, me.HasOnboarded)
}

// ==================== 咖啡馆 ====================

func TestCafeService_GetAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.signup(t, "Ana", "ana@example.com")
	cafe, err := env.cafes.GetCurrent(ctx, p)
	require.NoError(t, err)
	assert.Nil(t, cafe)

	_, err = env.cafes.Update(ctx, p, &dto.UpdateCafeRequest{Name: "New"})
	assert.ErrorIs(t, err, ErrCafeNotFound)

	_, err = env.onboarding.Complete(ctx, p, &dto.OnboardingRequest{Name: "Old Name"})
	require.NoError(t, err)

	_, err = env.cafes.Update(ctx, p, &dto.UpdateCafeRequest{Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)

	updated, err := env.cafes.Update(ctx, p, &dto.UpdateCafeRequest{Name: "New Name", Address: strPtr("Rua 1"), Phone: strPtr(" ")})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "Rua 1", *updated.Address)
	assert.Nil(t, updated.Phone)

	var row model.Cafe
	require.NoError(t, env.db.First(&row, updated.ID).Error)
	assert.Equal(t, p.UserID, row.UpdatedBy)
}

// ==================== 端到端 ====================

func TestCatalog_EndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, cafe := env.owner(t, "Ana", "ana@example.com")

	item := env.createItem(t, p, "Latte", 3.5)
	assert.Equal(t, "latte", item.Slug)
	assert.Equal(t, int64(350), item.PriceCents)
	assert.Equal(t, "EUR", item.Currency)
	assert.True(t, item.Available)

	ing, err := env.ingredients.AddToMenuItem(ctx, p, "latte", &dto.CreateIngredientRequest{Name: "Milk", Cost: floatPtr(0.4)})
	require.NoError(t, err)
	assert.Equal(t, int64(40), ing.CostCents)
	assert.Equal(t, "milk", ing.Slug)
	assert.Equal(t, "latte", ing.MenuItemSlug)

	sup, err := env.suppliers.Create(ctx, p, "milk", &dto.CreateSupplierRequest{
		Name:      "DairyCo",
		UnitPrice: floatPtr(0.35),
		Preferred: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(35), sup.UnitPriceCents)
	assert.Equal(t, "dairyco", sup.Slug)

	// 按名称（不区分大小写）也能定位配料
	list, err := env.suppliers.ListForIngredient(ctx, p, "MILK")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "DairyCo", list[0].Name)

	all, err := env.suppliers.ListForCafe(ctx, p, cafe.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Milk", all[0].IngredientName)

	ings, err := env.ingredients.ListForCafe(ctx, p, cafe.ID)
	require.NoError(t, err)
	require.Len(t, ings, 1)
	assert.Equal(t, "Latte", ings[0].MenuItemName)

	require.NoError(t, env.suppliers.Delete(ctx, p, sup.ID))

	list, err = env.suppliers.ListForIngredient(ctx, p, "milk")
	require.NoError(t, err)
	assert.Empty(t, list)

	all, err = env.suppliers.ListForCafe(ctx, p, cafe.ID)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = env.suppliers.Get(ctx, p, sup.ID)
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestMenuService_SlugSuffix(t *testing.T) {
	env := newTestEnv(t)
	p, cafe := env.owner(t, "Ana", "ana@example.com")

	first := env.createItem(t, p, "Latte", 3)
	second := env.createItem(t, p, "Latte", 3.2)
	third := env.createItem(t, p, "Iced  Latte!!", 4)

	assert.Equal(t, "latte", first.Slug)
	assert.Equal(t, "latte-1", second.Slug)
	assert.Equal(t, "iced-latte", third.Slug)

	items, err := env.menu.ListForCafe(context.Background(), p, cafe.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, third.ID, items[0].ID)

	// 其他咖啡馆使用同一 slug 互不影响
	other, _ := env.owner(t, "Bob", "bob@example.com")
	assert.Equal(t, "latte", env.createItem(t, other, "Latte", 3).Slug)
}

func TestMenuService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, _ := env.owner(t, "Ana", "ana@example.com")

	tests := []struct {
		name  string
		req   dto.CreateMenuItemRequest
		field string
	}{
		{"负价格", dto.CreateMenuItemRequest{Name: "Latte", Price: floatPtr(-1)}, "price"},
		{"缺少价格", dto.CreateMenuItemRequest{Name: "Latte"}, "price"},
		{"价格超出上限", dto.CreateMenuItemRequest{Name: "Latte", Price: floatPtr(2e17)}, "price"},
		{"换算为分时溢出", dto.CreateMenuItemRequest{Name: "Latte", Price: floatPtr(9.223372036854776e16)}, "price"},
		{"名称为空", dto.CreateMenuItemRequest{Name: " ", Price: floatPtr(1)}, "name"},
		{"图片地址非法", dto.CreateMenuItemRequest{Name: "Latte", Price: floatPtr(1), ImageURL: strPtr("not a url")}, "image_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.menu.Create(ctx, p, &tt.req)
			assertKind(t, err, KindInvalidInput)
			assert.Contains(t, AsAppError(err).Fields, tt.field)
		})
	}

	var count int64
	env.db.Model(&model.MenuItem{}).Count(&count)
	assert.Zero(t, count)

	// 未创建咖啡馆
	noCafe := env.signup(t, "Bob", "bob@example.com")
	_, err := env.menu.Create(ctx, noCafe, &dto.CreateMenuItemRequest{Name: "Latte", Price: floatPtr(1)})
	assert.ErrorIs(t, err, ErrCafeRequired)
}

func TestNormalizeImageURL(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want *string
	}{
		{"未填写", nil, nil},
		{"空白", strPtr("  "), nil},
		{"补全协议", strPtr(" cdn.example.com/a.png "), strPtr("https://cdn.example.com/a.png")},
		{"保留协议", strPtr("http://cdn.example.com/a.png"), strPtr("http://cdn.example.com/a.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeImageURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIngredientAndSupplier_MoneyBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, _ := env.owner(t, "Ana", "ana@example.com")
	env.createItem(t, p, "Latte", 3)

	_, err := env.ingredients.AddToMenuItem(ctx, p, "latte", &dto.CreateIngredientRequest{Name: "Milk", Cost: floatPtr(-0.01)})
	assertKind(t, err, KindInvalidInput)
	assert.Equal(t, "gte", AsAppError(err).Fields["cost"])

	_, err = env.ingredients.AddToMenuItem(ctx, p, "latte", &dto.CreateIngredientRequest{Name: "Milk", Cost: floatPtr(1e17)})
	assertKind(t, err, KindInvalidInput)
	assert.Equal(t, "lte", AsAppError(err).Fields["cost"])

	var count int64
	env.db.Model(&model.Ingredient{}).Count(&count)
	assert.Zero(t, count)

	_, err = env.ingredients.AddToMenuItem(ctx, p, "latte", &dto.CreateIngredientRequest{Name: "Milk"})
	require.NoError(t, err)

	_, err = env.suppliers.Create(ctx, p, "milk", &dto.CreateSupplierRequest{Name: "DairyCo", UnitPrice: floatPtr(-2)})
	assertKind(t, err, KindInvalidInput)
	assert.Equal(t, "gte", AsAppError(err).Fields["unit_price"])

	_, err = env.suppliers.Create(ctx, p, "milk", &dto.CreateSupplierRequest{Name: "DairyCo", UnitPrice: floatPtr(9.223372036854776e16)})
	assertKind(t, err, KindInvalidInput)
	assert.Equal(t, "lte", AsAppError(err).Fields["unit_price"])

	env.db.Model(&model.Supplier{}).Count(&count)
	assert.Zero(t, count)
}

func TestIngredientService_SlugConflictAcrossMenuItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, cafe := env.owner(t, "Ana", "ana@example.com")
	latte := env.createItem(t, p, "Latte", 3)
	mocha := env.createItem(t, p, "Mocha", 4)

	first, err := env.ingredients.AddToMenuItem(ctx, p, latte.Slug, &dto.CreateIngredientRequest{Name: "Milk"})
	require.NoError(t, err)
	assert.Equal(t, "milk", first.Slug)

	// 探测结果过期时由 (cafe_id, slug) 唯一索引拒绝，重试顺延后缀
	repo := repository.NewIngredientRepository(env.db)
	stale := func(ctx context.Context, cafeID int64, candidate string) (bool, error) { return false, nil }
	ing := &model.Ingredient{CafeID: cafe.ID, MenuItemID: mocha.ID, MenuItemSlug: mocha.Slug, Name: "Milk"}
	slug, err := NewSlugAllocator().Insert(ctx, ing.Name, cafe.ID, stale, func(slug string) error {
		ing.ID = 0
		ing.Slug = slug
		return repo.Create(ctx, ing)
	})
	require.NoError(t, err)
	assert.Equal(t, "milk-1", slug)

	got, err := env.ingredients.Get(ctx, p, "milk")
	require.NoError(t, err)
	assert.Equal(t, latte.ID, got.MenuItemID)
	got, err = env.ingredients.Get(ctx, p, "milk-1")
	require.NoError(t, err)
	assert.Equal(t, mocha.ID, got.MenuItemID)

	third, err := env.ingredients.AddToMenuItem(ctx, p, mocha.Slug, &dto.CreateIngredientRequest{Name: "Milk"})
	require.NoError(t, err)
	assert.Equal(t, "milk-2", third.Slug)
}

func TestIngredientService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, _ := env.owner(t, "Ana", "ana@example.com")
	item := env.createItem(t, p, "Latte", 3)

	_, err := env.ingredients.AddToMenuItem(ctx, p, "latte", &dto.CreateIngredientRequest{Name: "Milk"})
	require.NoError(t, err)
	_, err = env.suppliers.Create(ctx, p, "milk", &dto.CreateSupplierRequest{Name: "DairyCo"})
	require.NoError(t, err)

	require.NoError(t, env.ingredients.Delete(ctx, p, "milk"))

	_, err = env.ingredients.Get(ctx, p, "milk")
	assert.ErrorIs(t, err, ErrIngredientNotFound)

	var count int64
	env.db.Model(&model.Supplier{}).Count(&count)
	assert.Zero(t, count)

	// 删除菜单项
	_, err = env.ingredients.AddToMenuItem(ctx, p, "latte", &dto.CreateIngredientRequest{Name: "Espresso"})
	require.NoError(t, err)
	require.NoError(t, env.menu.Delete(ctx, p, item.ID))

	env.db.Model(&model.Ingredient{}).Count(&count)
	assert.Zero(t, count)

	_, err = env.menu.Get(ctx, p, item.ID)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

// ==================== 租户隔离 ====================

func TestCrossTenantAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, aliceCafe := env.owner(t, "Alice", "alice@example.com")
	item := env.createItem(t, alice, "Latte", 3)
	_, err := env.ingredients.AddToMenuItem(ctx, alice, "latte", &dto.CreateIngredientRequest{Name: "Oat Milk"})
	require.NoError(t, err)
	sup, err := env.suppliers.Create(ctx, alice, "oat-milk", &dto.CreateSupplierRequest{Name: "Oatly"})
	require.NoError(t, err)

	bob, _ := env.owner(t, "Bob", "bob@example.com")

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"读取他人菜单", func() error { _, err := env.menu.ListForCafe(ctx, bob, aliceCafe.ID); return err }, ErrForbidden},
		{"读取他人配料", func() error { _, err := env.ingredients.ListForCafe(ctx, bob, aliceCafe.ID); return err }, ErrForbidden},
		{"读取他人供应商", func() error { _, err := env.suppliers.ListForCafe(ctx, bob, aliceCafe.ID); return err }, ErrForbidden},
		{"不存在的咖啡馆", func() error { _, err := env.suppliers.ListForCafe(ctx, bob, 99999); return err }, ErrForbidden},
		{"读取他人菜单项", func() error { _, err := env.menu.Get(ctx, bob, item.ID); return err }, ErrForbidden},
		{"删除他人菜单项", func() error { return env.menu.Delete(ctx, bob, item.ID) }, ErrForbidden},
		{"为他人菜单项添加配料", func() error {
			_, err := env.ingredients.AddToMenuItem(ctx, bob, "latte", &dto.CreateIngredientRequest{Name: "Sugar"})
			return err
		}, ErrForbidden},
		{"读取他人配料详情", func() error { _, err := env.ingredients.Get(ctx, bob, "Oat Milk"); return err }, ErrForbidden},
		{"为他人配料添加供应商", func() error {
			_, err := env.suppliers.Create(ctx, bob, "oat-milk", &dto.CreateSupplierRequest{Name: "Evil"})
			return err
		}, ErrForbidden},
		{"读取他人供应商详情", func() error { _, err := env.suppliers.Get(ctx, bob, sup.ID); return err }, ErrForbidden},
		{"删除他人供应商", func() error { return env.suppliers.Delete(ctx, bob, sup.ID) }, ErrForbidden},
		{"菜单项不存在", func() error { _, err := env.menu.Get(ctx, bob, 99999); return err }, ErrMenuItemNotFound},
		{"供应商不存在", func() error { _, err := env.suppliers.Get(ctx, bob, 99999); return err }, ErrSupplierNotFound},
		{"配料不存在", func() error { _, err := env.ingredients.Get(ctx, bob, "nothing"); return err }, ErrIngredientNotFound},
		{"菜单项 slug 不存在", func() error {
			_, err := env.ingredients.AddToMenuItem(ctx, bob, "mocha", &dto.CreateIngredientRequest{Name: "Sugar"})
			return err
		}, ErrMenuItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.want)
		})
	}

	// 越权操作没有留下任何数据
	var count int64
	env.db.Model(&model.Supplier{}).Count(&count)
	assert.Equal(t, int64(1), count)
	env.db.Model(&model.Ingredient{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUnauthenticatedPrincipal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.menu.ListForCafe(ctx, nil, 1)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = env.employees.List(ctx, nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = env.onboarding.Complete(ctx, nil, &dto.OnboardingRequest{Name: "Cafe"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

// ==================== 员工 ====================

func TestEmployeeService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.signup(t, "Ana", "ana@example.com")

	emp, err := env.employees.Create(ctx, p, &dto.CreateEmployeeRequest{
		FirstName: " Joao ",
		LastName:  "Silva",
		Email:     "JOAO@example.com",
		Role:      "barista",
	})
	require.NoError(t, err)
	assert.Equal(t, "Joao", emp.FirstName)
	assert.Equal(t, "joao@example.com", emp.Email)
	assert.True(t, emp.Active)
	assert.Equal(t, p.UserID, emp.CreatedBy)

	_, err = env.employees.Create(ctx, p, &dto.CreateEmployeeRequest{FirstName: "X", LastName: "Y", Email: "bad", Role: "r"})
	assertKind(t, err, KindInvalidInput)

	list, err := env.employees.List(ctx, p)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := env.employees.Get(ctx, p, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Silva", got.LastName)

	require.NoError(t, env.employees.Delete(ctx, p, emp.ID))
	assert.ErrorIs(t, env.employees.Delete(ctx, p, emp.ID), ErrEmployeeNotFound)

	_, err = env.employees.Get(ctx, p, emp.ID)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

// ==================== 错误分类 ====================

func TestStoreErr(t *testing.T) {
	assert.Nil(t, storeErr(nil))
	assert.Equal(t, KindServer, KindOf(storeErr(errors.New("connection reset"))))
	assert.Equal(t, KindInvalidInput, KindOf(storeErr(gorm.ErrCheckConstraintViolated)))
	assert.ErrorIs(t, storeErr(ErrForbidden), ErrForbidden)

	// 对外信息不包含底层错误
	appErr := AsAppError(storeErr(errors.New("pq: relation does not exist")))
	assert.Equal(t, "server_error", appErr.Code)
	assert.NotContains(t, appErr.Message, "pq:")
}
