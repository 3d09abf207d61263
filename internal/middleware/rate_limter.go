package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ==================== KeyedRateLimiter 按键限流器 ====================

// KeyedRateLimiter 按键（如客户端 IP）维护令牌桶
// 用于登录接口防暴力破解
type KeyedRateLimiter struct {
	limiters sync.Map // key -> *limiterEntry
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

// limiterEntry 限流条目
type limiterEntry struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

// NewKeyedRateLimiter 创建限流器
// perSecond: 每秒补充的令牌数; burst: 桶容量
func NewKeyedRateLimiter(perSecond float64, burst int) *KeyedRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &KeyedRateLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idleTTL: 30 * time.Minute,
		now:     time.Now,
	}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 消耗一个令牌
func (r *KeyedRateLimiter) Check(key string) CheckResult {
	actual, _ := r.limiters.LoadOrStore(key, &limiterEntry{
		limiter: rate.NewLimiter(r.limit, r.burst),
	})
	entry := actual.(*limiterEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := r.now()
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return CheckResult{Allowed: false, RetryAfter: time.Minute}
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return CheckResult{Allowed: false, RetryAfter: delay}
	}
	return CheckResult{Allowed: true}
}

// Reset 重置指定 key 的限流
func (r *KeyedRateLimiter) Reset(key string) {
	r.limiters.Delete(key)
}

// Sweep 清理长时间未使用的条目
func (r *KeyedRateLimiter) Sweep() int {
	cutoff := r.now().Add(-r.idleTTL)
	removed := 0
	r.limiters.Range(func(k, v interface{}) bool {
		entry := v.(*limiterEntry)
		entry.mu.Lock()
		idle := entry.lastSeen.Before(cutoff)
		entry.mu.Unlock()
		if idle {
			r.limiters.Delete(k)
			removed++
		}
		return true
	})
	return removed
}

// ==================== Gin 中间件 ====================

// LoginRateLimit 登录限流中间件，按客户端 IP
func LoginRateLimit(limiter *KeyedRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := limiter.Check("login:" + c.ClientIP())
		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds()) + 1
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":      false,
				"error":   "too_many_requests",
				"message": formatRetryMessage(result.RetryAfter),
			})
			return
		}
		c.Next()
	}
}

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 1 {
		seconds = 1
	}

	if seconds < 60 {
		return fmt.Sprintf("尝试过于频繁，请 %d 秒后重试", seconds)
	}

	minutes := seconds / 60
	remainingSeconds := seconds % 60
	if remainingSeconds == 0 {
		return fmt.Sprintf("尝试过于频繁，请 %d 分钟后重试", minutes)
	}
	return fmt.Sprintf("尝试过于频繁，请 %d 分 %d 秒后重试", minutes, remainingSeconds)
}
