package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 应用配置
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Session  SessionConfig
	Redis    RedisConfig
	Log      LogConfig
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port            string
	Mode            string // gin 模式: debug / release / test
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string // postgres / sqlite
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string // silent / error / warn / info
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWTSecret  string
	Issuer     string
	SessionTTL time.Duration
	CookieName string
	LoginRate  float64 // 每秒允许的登录次数（按 IP）
	LoginBurst int
}

// SessionConfig 会话存储配置
type SessionConfig struct {
	Store       string // db / redis
	CleanupCron string
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string
	Format string
}

// 支持的取值
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	SessionStoreDB    = "db"
	SessionStoreRedis = "redis"
)

var (
	ErrUnknownDriver       = errors.New("不支持的数据库驱动")
	ErrUnknownSessionStore = errors.New("不支持的会话存储")
	ErrMissingJWTSecret    = errors.New("JWT_SECRET 不能为空")
)

// ==================== 加载 ====================

// Load 从环境变量（及可选的 .env 文件）加载配置
func Load() (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			Mode:            v.GetString("GIN_MODE"),
			CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:             v.GetString("DB_DSN"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			LogLevel:        v.GetString("DB_LOG_LEVEL"),
		},
		Auth: AuthConfig{
			JWTSecret:  v.GetString("JWT_SECRET"),
			Issuer:     v.GetString("JWT_ISSUER"),
			SessionTTL: v.GetDuration("SESSION_TTL"),
			CookieName: v.GetString("SESSION_COOKIE"),
			LoginRate:  v.GetFloat64("LOGIN_RATE"),
			LoginBurst: v.GetInt("LOGIN_BURST"),
		},
		Session: SessionConfig{
			Store:       strings.ToLower(v.GetString("SESSION_STORE")),
			CleanupCron: v.GetString("SESSION_CLEANUP_CRON"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownDriver, c.Database.Driver)
	}

	switch c.Session.Store {
	case SessionStoreDB, SessionStoreRedis:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSessionStore, c.Session.Store)
	}

	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_DSN", "host=localhost user=postgres password=postgres dbname=cafe port=5432 sslmode=disable TimeZone=UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("DB_LOG_LEVEL", "warn")

	v.SetDefault("JWT_SECRET", "cafe-admin-secret-key-change-in-production")
	v.SetDefault("JWT_ISSUER", "cafe-admin")
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("SESSION_COOKIE", "cafe_session")
	v.SetDefault("LOGIN_RATE", 0.2)
	v.SetDefault("LOGIN_BURST", 5)

	v.SetDefault("SESSION_STORE", SessionStoreDB)
	v.SetDefault("SESSION_CLEANUP_CRON", "0 0/30 * * * *")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
