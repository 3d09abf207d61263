package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/controller"
	"cafe_admin_v1/internal/middleware"

	_ "cafe_admin_v1/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Auth       *controller.AuthController
	Cafe       *controller.CafeController
	Menu       *controller.MenuController
	Ingredient *controller.IngredientController
	Supplier   *controller.SupplierController
	Employee   *controller.EmployeeController
}

// Options 路由依赖的中间件组件
type Options struct {
	Resolver     *middleware.SessionResolver
	LoginLimiter *middleware.KeyedRateLimiter // 为 nil 时不限流
	Metrics      *middleware.Metrics          // 为 nil 时不暴露 /metrics
	CORSOrigins  []string
}

// SetupRouter 创建 gin 引擎并注册所有路由
func SetupRouter(ctl *Controllers, opts Options) *gin.Engine {
	dto.RegisterGinValidation()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	InitRoutes(r, ctl, opts)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctl *Controllers, opts Options) {
	// 1. 运维路由
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	if opts.Metrics != nil {
		r.GET("/metrics", opts.Metrics.Handler())
	}
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")

	// auth 公开接口
	auth := api.Group("/auth")
	{
		// POST /api/auth/signup
		auth.POST("/signup", ctl.Auth.Signup)

		// POST /api/auth/login
		if opts.LoginLimiter != nil {
			auth.POST("/login", middleware.LoginRateLimit(opts.LoginLimiter), ctl.Auth.Login)
		} else {
			auth.POST("/login", ctl.Auth.Login)
		}
	}

	// 以下接口需要会话
	authed := api.Group("")
	authed.Use(middleware.SessionAuth(opts.Resolver), middleware.AuditContext())
	{
		authed.POST("/auth/logout", ctl.Auth.Logout)
		authed.GET("/auth/me", ctl.Auth.Me)

		// 咖啡馆
		authed.GET("/cafe", ctl.Cafe.GetCurrent)
		authed.PUT("/cafe", ctl.Cafe.Update)
		authed.POST("/onboarding/complete", ctl.Cafe.CompleteOnboarding)

		// 咖啡馆范围的聚合列表
		cafe := authed.Group("/cafe/:id")
		{
			cafe.GET("/menu", ctl.Menu.ListForCafe)
			cafe.GET("/ingredients", ctl.Ingredient.ListForCafe)
			cafe.GET("/suppliers", ctl.Supplier.ListForCafe)
		}

		// 菜单
		menu := authed.Group("/menu")
		{
			menu.POST("/create", ctl.Menu.Create)
			menu.GET("/item/:id", ctl.Menu.Get)
			menu.DELETE("/item/:id", ctl.Menu.Delete)
			menu.POST("/items/ingredients/:slug", ctl.Ingredient.AddToMenuItem)
		}

		// 配料（slug 或名称）
		authed.GET("/ingredient/:slug", ctl.Ingredient.Get)
		authed.DELETE("/ingredient/:slug", ctl.Ingredient.Delete)
		ingredients := authed.Group("/ingredients/:slug")
		{
			ingredients.GET("", ctl.Ingredient.Get)
			ingredients.GET("/suppliers", ctl.Supplier.ListForIngredient)
			ingredients.POST("/suppliers", ctl.Supplier.Create)
		}

		// 供应商
		suppliers := authed.Group("/suppliers")
		{
			suppliers.GET("/:id", ctl.Supplier.Get)
			suppliers.DELETE("/:id", ctl.Supplier.Delete)
		}

		// 员工（不区分咖啡馆）
		employees := authed.Group("/employees")
		{
			employees.GET("", ctl.Employee.List)
			employees.POST("", ctl.Employee.Create)
			employees.GET("/:id", ctl.Employee.Get)
			employees.DELETE("/:id", ctl.Employee.Delete)
		}
	}
}
