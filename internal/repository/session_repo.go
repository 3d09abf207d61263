package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"cafe_admin_v1/internal/model"
)

// ==================== SessionStore 会话存储 ====================

// SessionStore 会话存储接口（数据库 / Redis 两种实现）
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	// Get 不存在返回 nil, nil；过期判断由调用方负责
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	// DeleteExpired 清理 before 之前过期的会话，返回清理条数
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository 创建基于数据库的会话存储
func NewSessionRepository(db *gorm.DB) SessionStore {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Session{}).Error
}

func (r *sessionRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Session{}).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", before).Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
