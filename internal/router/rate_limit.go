package router

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/tripcart/internal/http/response"
	"github.com/tripcart/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware 频率限制中间件；Redis 不可用时退化为进程内令牌桶
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	if rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	var local *localLimiter
	if client == nil {
		local = newLocalLimiter(rule)
	}
	return func(c *gin.Context) {
		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		if local != nil {
			if wait, ok := local.allow(key); !ok {
				abortRateLimited(c, rule, wait)
				return
			}
			c.Next()
			return
		}

		result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds).Result()
		if err != nil {
			msg := i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable")
			response.Error(c, response.CodeInternal, msg)
			c.Abort()
			return
		}

		values, ok := result.([]interface{})
		if !ok || len(values) < 2 {
			msg := i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable")
			response.Error(c, response.CodeInternal, msg)
			c.Abort()
			return
		}
		count, ok := toInt64(values[0])
		if !ok {
			msg := i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable")
			response.Error(c, response.CodeInternal, msg)
			c.Abort()
			return
		}
		ttlSeconds, _ := toInt64(values[1])
		if count > int64(rule.MaxRequests) {
			abortRateLimited(c, rule, int(ttlSeconds))
			return
		}

		c.Next()
	}
}

func abortRateLimited(c *gin.Context, rule RateLimitRule, waitSeconds int) {
	if waitSeconds < 1 {
		waitSeconds = rule.WindowSeconds
	}
	if waitSeconds < 1 {
		waitSeconds = 1
	}
	msgKey := strings.TrimSpace(rule.MessageKey)
	if msgKey == "" {
		msgKey = "error.rate_limited"
	}
	msg := i18n.Sprintf(i18n.ResolveLocale(c), msgKey, waitSeconds)
	response.Error(c, response.CodeTooManyRequests, msg)
	c.Abort()
}

// localLimiter 按 key 维护令牌桶：窗口内最多 MaxRequests 次
type localLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newLocalLimiter(rule RateLimitRule) *localLimiter {
	window := time.Duration(rule.WindowSeconds) * time.Second
	return &localLimiter{
		limit:    rate.Every(window / time.Duration(rule.MaxRequests)),
		burst:    rule.MaxRequests,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *localLimiter) allow(key string) (int, bool) {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	reservation := limiter.Reserve()
	delay := reservation.Delay()
	if delay == 0 {
		return 0, true
	}
	reservation.Cancel()
	return int(math.Ceil(delay.Seconds())), false
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	default:
		return 0, false
	}
}
