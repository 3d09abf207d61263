package task

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"cafe_admin_v1/internal/middleware"
	"cafe_admin_v1/internal/repository"
	"cafe_admin_v1/pkg/logger"
)

// DefaultCleanupSpec 默认每 30 分钟清理一次（秒级 cron 表达式）
const DefaultCleanupSpec = "0 0/30 * * * *"

// CleanupResult 单次清理结果
type CleanupResult struct {
	ExpiredSessions int64
	IdleLimiters    int
}

// SessionCleanupTask 清理过期会话与闲置的登录限流器
type SessionCleanupTask struct {
	sessions repository.SessionStore
	limiter  *middleware.KeyedRateLimiter // 可为 nil
	spec     string
	timeout  time.Duration
	now      func() time.Time
	Cron     *cron.Cron
}

// NewSessionCleanupTask 创建清理任务，spec 为空时使用默认表达式
func NewSessionCleanupTask(sessions repository.SessionStore, limiter *middleware.KeyedRateLimiter, spec string) *SessionCleanupTask {
	if spec == "" {
		spec = DefaultCleanupSpec
	}
	return &SessionCleanupTask{
		sessions: sessions,
		limiter:  limiter,
		spec:     spec,
		timeout:  2 * time.Minute,
		now:      time.Now,
		Cron:     cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务，启动时先执行一次
func (t *SessionCleanupTask) Start() error {
	log := logger.Named("task.session")

	_, err := t.Cron.AddFunc(t.spec, t.run)
	if err != nil {
		return fmt.Errorf("无法注册会话清理任务: %w", err)
	}

	// 首次执行
	go t.run()

	t.Cron.Start()
	log.Info("会话清理任务已启动", zap.String("spec", t.spec))
	return nil
}

// Stop 停止调度并等待正在执行的任务结束
func (t *SessionCleanupTask) Stop() {
	<-t.Cron.Stop().Done()
}

func (t *SessionCleanupTask) run() {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	res, err := t.RunOnce(ctx)
	if err != nil {
		logger.Named("task.session").Error("会话清理失败", zap.Error(err))
		return
	}
	if res.ExpiredSessions > 0 || res.IdleLimiters > 0 {
		logger.Named("task.session").Info("会话清理完成",
			zap.Int64("expired_sessions", res.ExpiredSessions),
			zap.Int("idle_limiters", res.IdleLimiters),
		)
	}
}

// RunOnce 执行一次清理
func (t *SessionCleanupTask) RunOnce(ctx context.Context) (*CleanupResult, error) {
	res := &CleanupResult{}

	n, err := t.sessions.DeleteExpired(ctx, t.now())
	if err != nil {
		return nil, err
	}
	res.ExpiredSessions = n

	if t.limiter != nil {
		res.IdleLimiters = t.limiter.Sweep()
	}
	return res, nil
}
