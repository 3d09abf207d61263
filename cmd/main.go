package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cafe_admin_v1/internal/config"
	"cafe_admin_v1/internal/controller"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/model"
	"cafe_admin_v1/internal/repository"
	"cafe_admin_v1/internal/router"
	"cafe_admin_v1/internal/service"
	"cafe_admin_v1/internal/task"
	"cafe_admin_v1/pkg/database"
	"cafe_admin_v1/pkg/logger"
)

// @title 咖啡馆管理后台 API
// @version 1.0
// @description 多租户咖啡馆管理：菜单、配料、供应商、员工
// @host localhost:8080
// @BasePath /
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// 2. 初始化日志
	log, err := logger.Init(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 3. 初始化数据库
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatal("数据库初始化失败", zap.Error(err))
	}

	// 4. 初始化依赖
	deps, err := initDependencies(cfg, db)
	if err != nil {
		log.Fatal("依赖初始化失败", zap.Error(err))
	}

	// 5. 启动定时任务
	if err := initTasks(cfg, deps); err != nil {
		log.Fatal("定时任务启动失败", zap.Error(err))
	}
	defer deps.CleanupTask.Stop()

	// 6. 初始化路由
	gin.SetMode(cfg.Server.Mode)
	r := router.SetupRouter(deps.Controllers, router.Options{
		Resolver:     deps.Resolver,
		LoginLimiter: deps.LoginLimiter,
		Metrics:      middleware.NewMetrics(),
		CORSOrigins:  cfg.Server.CORSOrigins,
	})

	// 7. 启动服务
	startServer(cfg.Server, r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB           *gorm.DB
	Repos        *Repositories
	Services     *Services
	Controllers  *router.Controllers
	Resolver     *middleware.SessionResolver
	LoginLimiter *middleware.KeyedRateLimiter
	CleanupTask  *task.SessionCleanupTask
}

// Repositories 仓库集合
type Repositories struct {
	Users     repository.UserRepository
	Sessions  repository.SessionStore
	Cafes     repository.CafeRepository
	Owners    repository.OwnershipRepository
	Employees repository.EmployeeRepository
	CafeUow   *repository.CafeUnitOfWork
	Catalog   *repository.CatalogUnitOfWork
}

// Services 服务集合
type Services struct {
	Auth       *service.AuthService
	Cafe       *service.CafeService
	Onboarding *service.OnboardingService
	Menu       *service.MenuService
	Ingredient *service.IngredientService
	Supplier   *service.SupplierService
	Employee   *service.EmployeeService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库并注册审计回调
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.InitDB(database.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}, model.All()...)
	if err != nil {
		return nil, err
	}

	if err := middleware.RegisterAuditCallbacks(db); err != nil {
		return nil, err
	}
	return db, nil
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) (*Dependencies, error) {
	middleware.SetSessionConfig(&middleware.SessionConfig{
		SecretKey:  cfg.Auth.JWTSecret,
		TTL:        cfg.Auth.SessionTTL,
		Issuer:     cfg.Auth.Issuer,
		CookieName: cfg.Auth.CookieName,
	})

	// -------- Repo 层 --------
	sessions, err := initSessionStore(cfg, db)
	if err != nil {
		return nil, err
	}
	repos := &Repositories{
		Users:     repository.NewUserRepository(db),
		Sessions:  sessions,
		Cafes:     repository.NewCafeRepository(db),
		Owners:    repository.NewOwnershipRepository(db),
		Employees: repository.NewEmployeeRepository(db),
		CafeUow:   repository.NewCafeUnitOfWork(db),
		Catalog:   repository.NewCatalogUnitOfWork(db),
	}

	// -------- 业务服务 --------
	gate := service.NewOwnershipGate(repos.Owners, repos.Cafes)
	slugs := service.NewSlugAllocator()
	services := &Services{
		Auth:       service.NewAuthService(repos.Users, repos.Sessions),
		Cafe:       service.NewCafeService(gate, repos.Cafes),
		Onboarding: service.NewOnboardingService(repos.CafeUow, slugs),
		Menu:       service.NewMenuService(gate, repos.Catalog, slugs),
		Ingredient: service.NewIngredientService(gate, repos.Catalog, slugs),
		Supplier:   service.NewSupplierService(gate, repos.Catalog, slugs),
		Employee:   service.NewEmployeeService(repos.Employees),
	}

	return &Dependencies{
		DB:           db,
		Repos:        repos,
		Services:     services,
		Controllers:  initControllers(services),
		Resolver:     middleware.NewSessionResolver(repos.Sessions, repos.Users),
		LoginLimiter: middleware.NewKeyedRateLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst),
	}, nil
}

// initSessionStore 会话存储：数据库或 Redis
func initSessionStore(cfg *config.Config, db *gorm.DB) (repository.SessionStore, error) {
	if cfg.Session.Store != config.SessionStoreRedis {
		return repository.NewSessionRepository(db), nil
	}

	rdb, err := repository.NewRedisClient(&repository.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	logger.L().Info("会话存储使用 Redis", zap.String("addr", cfg.Redis.Addr))
	return repository.NewRedisSessionStore(rdb), nil
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *router.Controllers {
	return &router.Controllers{
		Auth:       controller.NewAuthController(svc.Auth),
		Cafe:       controller.NewCafeController(svc.Cafe, svc.Onboarding),
		Menu:       controller.NewMenuController(svc.Menu),
		Ingredient: controller.NewIngredientController(svc.Ingredient),
		Supplier:   controller.NewSupplierController(svc.Supplier),
		Employee:   controller.NewEmployeeController(svc.Employee),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(cfg *config.Config, deps *Dependencies) error {
	// 过期会话 + 闲置限流器清理
	deps.CleanupTask = task.NewSessionCleanupTask(deps.Repos.Sessions, deps.LoginLimiter, cfg.Session.CleanupCron)
	if err := deps.CleanupTask.Start(); err != nil {
		return err
	}

	logger.L().Info("定时任务已启动")
	return nil
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(cfg config.ServerConfig, r *gin.Engine) {
	log := logger.L()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 异步启动服务
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务强制关闭", zap.Error(err))
		return
	}

	log.Info("服务已退出")
}
