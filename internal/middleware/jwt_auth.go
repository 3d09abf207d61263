package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"cafe_admin_v1/internal/repository"
	"cafe_admin_v1/pkg/logger"
)

// ==================== 会话配置 ====================

// SessionConfig 会话令牌配置
type SessionConfig struct {
	SecretKey  string        // 签名密钥
	TTL        time.Duration // 会话有效期
	Issuer     string        // 签发者
	CookieName string        // 会话 Cookie 名
}

// DefaultSessionConfig 默认配置
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		SecretKey:  "cafe-admin-secret-key-change-in-production",
		TTL:        7 * 24 * time.Hour,
		Issuer:     "cafe-admin",
		CookieName: "cafe_session",
	}
}

// 全局配置
var sessionConfig = DefaultSessionConfig()

// SetSessionConfig 设置会话配置
func SetSessionConfig(cfg *SessionConfig) {
	sessionConfig = cfg
}

// GetSessionConfig 获取会话配置
func GetSessionConfig() *SessionConfig {
	return sessionConfig
}

// ==================== Claims 定义 ====================

// SessionClaims 会话声明，Subject 为用户 ID，ID (jti) 为会话 ID
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateSessionToken 为已落库的会话签发令牌
func GenerateSessionToken(userID, email, sessionID string, expiresAt time.Time) (string, error) {
	claims := &SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID,
			Issuer:    sessionConfig.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(sessionConfig.SecretKey))
}

// ParseSessionToken 解析令牌
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(sessionConfig.SecretKey), nil
	}, jwt.WithIssuer(sessionConfig.Issuer))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		if claims.ID == "" || claims.Subject == "" {
			return nil, errors.New("invalid token")
		}
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ==================== 会话解析 ====================

// Principal 当前登录主体
type Principal struct {
	UserID       string
	Email        string
	Name         string
	HasOnboarded bool
	SessionID    string
}

var (
	ErrNoCredentials  = errors.New("未提供认证信息")
	ErrInvalidToken   = errors.New("令牌无效或已过期")
	ErrSessionRevoked = errors.New("会话不存在或已注销")
	ErrSessionExpired = errors.New("会话已过期")
	ErrUserMissing    = errors.New("会话对应的用户不存在")
)

// IsUnauthenticated 是否为认证失败（区别于存储故障）
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrNoCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrSessionRevoked) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrUserMissing)
}

// SessionResolver 从请求解析登录主体：令牌 -> 会话存储 -> 用户
type SessionResolver struct {
	sessions repository.SessionStore
	users    repository.UserRepository
	now      func() time.Time
}

// NewSessionResolver 创建会话解析器
func NewSessionResolver(sessions repository.SessionStore, users repository.UserRepository) *SessionResolver {
	return &SessionResolver{sessions: sessions, users: users, now: time.Now}
}

// Resolve 解析请求中的登录主体
func (r *SessionResolver) Resolve(req *http.Request) (*Principal, error) {
	raw := extractToken(req)
	if raw == "" {
		return nil, ErrNoCredentials
	}
	return r.ResolveToken(req.Context(), raw)
}

// ResolveToken 解析令牌字符串
func (r *SessionResolver) ResolveToken(ctx context.Context, raw string) (*Principal, error) {
	claims, err := ParseSessionToken(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, err := r.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != claims.Subject {
		return nil, ErrSessionRevoked
	}
	if session.Expired(r.now()) {
		return nil, ErrSessionExpired
	}

	user, err := r.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserMissing
	}

	return &Principal{
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.Name,
		HasOnboarded: user.HasOnboarded,
		SessionID:    session.ID,
	}, nil
}

// extractToken 优先 Authorization: Bearer，其次会话 Cookie
func extractToken(req *http.Request) string {
	if authHeader := req.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := req.Cookie(sessionConfig.CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyPrincipal = "principal"
)

// SessionAuth 会话认证中间件
func SessionAuth(resolver *SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := resolver.Resolve(c.Request)
		if err != nil {
			if IsUnauthenticated(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"ok":      false,
					"error":   "not_authenticated",
					"message": err.Error(),
				})
				return
			}

			logger.L().Error("会话解析失败", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"ok":      false,
				"error":   "server_error",
				"message": "服务器内部错误",
			})
			return
		}

		// 注入主体信息到 Context
		c.Set(ContextKeyPrincipal, principal)
		c.Next()
	}
}

// ==================== 辅助函数 ====================

// GetPrincipal 从 Context 获取登录主体
func GetPrincipal(c *gin.Context) *Principal {
	if p, exists := c.Get(ContextKeyPrincipal); exists {
		if principal, ok := p.(*Principal); ok {
			return principal
		}
	}
	return nil
}

// GetUserID 从 Context 获取用户 ID
func GetUserID(c *gin.Context) string {
	if p := GetPrincipal(c); p != nil {
		return p.UserID
	}
	return ""
}
