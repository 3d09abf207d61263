package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cafe_admin_v1/internal/model"
)

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient 创建 Redis 客户端并检查连通性
func NewRedisClient(cfg *RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping 失败: %w", err)
	}
	return rdb, nil
}

// ==================== Redis 会话存储 ====================
// session:<id>          -> 会话 JSON，TTL 与过期时间一致
// user_sessions:<user>  -> 该用户的会话 ID 集合

const (
	sessionKeyPrefix     = "session:"
	userSessionKeyPrefix = "user_sessions:"
)

type redisSessionStore struct {
	rdb *redis.Client
}

// NewRedisSessionStore 创建基于 Redis 的会话存储
func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func sessionKey(id string) string      { return sessionKeyPrefix + id }
func userSessionKey(uid string) string { return userSessionKeyPrefix + uid }

func (s *redisSessionStore) Create(ctx context.Context, session *model.Session) error {
	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("会话已过期")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(session.ID), payload, ttl)
		pipe.SAdd(ctx, userSessionKey(session.UserID), session.ID)
		return nil
	})
	return err
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("会话数据损坏: %w", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if err != nil || session == nil {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(id))
		pipe.SRem(ctx, userSessionKey(session.UserID), id)
		return nil
	})
	return err
}

func (s *redisSessionStore) DeleteByUser(ctx context.Context, userID string) error {
	ids, err := s.rdb.SMembers(ctx, userSessionKey(userID)).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, userSessionKey(userID))
	return s.rdb.Del(ctx, keys...).Err()
}

// DeleteExpired 会话键由 TTL 自动淘汰，这里只清理用户集合里的悬挂 ID
func (s *redisSessionStore) DeleteExpired(ctx context.Context, _ time.Time) (int64, error) {
	var removed int64
	iter := s.rdb.Scan(ctx, 0, userSessionKeyPrefix+"*", 200).Iterator()
	for iter.Next(ctx) {
		setKey := iter.Val()
		ids, err := s.rdb.SMembers(ctx, setKey).Result()
		if err != nil {
			return removed, err
		}
		for _, id := range ids {
			n, err := s.rdb.Exists(ctx, sessionKey(id)).Result()
			if err != nil {
				return removed, err
			}
			if n == 0 {
				if err := s.rdb.SRem(ctx, setKey, id).Err(); err != nil {
					return removed, err
				}
				removed++
			}
		}
	}
	return removed, iter.Err()
}
