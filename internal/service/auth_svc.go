package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cafe_admin_v1/internal/api/dto"
	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/model"
	"cafe_admin_v1/internal/repository"
)

// ==================== AuthService 认证服务 ====================

// AuthService 邮箱 + 密码认证，会话落库后签发令牌
type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionStore
	now      func() time.Time
}

// NewAuthService 创建认证服务
func NewAuthService(users repository.UserRepository, sessions repository.SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions, now: time.Now}
}

// SessionMeta 登录来源信息
type SessionMeta struct {
	IPAddress string
	UserAgent string
}

// Signup 注册
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserInfo, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := dto.Validate(req); err != nil {
		return nil, ValidationError(err)
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, storeErr(err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrServer.WithErr(err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, storeErr(err)
	}

	return toUserInfo(user), nil
}

// Login 登录，创建会话并签发令牌
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest, meta SessionMeta) (*dto.LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := dto.Validate(req); err != nil {
		return nil, ValidationError(err)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, storeErr(err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	cfg := middleware.GetSessionConfig()
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(cfg.TTL),
		IPAddress: meta.IPAddress,
		UserAgent: truncate(meta.UserAgent, 512),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, storeErr(err)
	}

	token, err := middleware.GenerateSessionToken(user.ID, user.Email, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, ErrServer.WithErr(err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      toUserInfo(user),
	}, nil
}

// Logout 注销当前会话
func (s *AuthService) Logout(ctx context.Context, p *middleware.Principal) error {
	if p == nil {
		return ErrNotAuthenticated
	}
	return storeErr(s.sessions.Delete(ctx, p.SessionID))
}

// Me 当前用户信息（实时读取引导状态）
func (s *AuthService) Me(ctx context.Context, p *middleware.Principal) (*dto.UserInfo, error) {
	if p == nil {
		return nil, ErrNotAuthenticated
	}
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, storeErr(err)
	}
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	return toUserInfo(user), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
