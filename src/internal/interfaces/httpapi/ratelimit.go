package httpapi

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ===========================
// 依呼叫者限流
// ===========================

// keyedLimiter 每個鍵一個 token bucket
type keyedLimiter struct {
	limiters    sync.Map // map[string]*rate.Limiter
	rate        rate.Limit
	burst       int
	mu          sync.Mutex
	lastCleanup time.Time
}

func newKeyedLimiter(perMinute, burst int) *keyedLimiter {
	return &keyedLimiter{
		rate:        rate.Limit(float64(perMinute) / time.Minute.Seconds()),
		burst:       burst,
		lastCleanup: time.Now(),
	}
}

func (kl *keyedLimiter) get(key string) *rate.Limiter {
	if l, ok := kl.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}
	actual, _ := kl.limiters.LoadOrStore(key, rate.NewLimiter(kl.rate, kl.burst))
	kl.maybeCleanup()
	return actual.(*rate.Limiter)
}

// maybeCleanup 每 5 分鐘移除 bucket 已滿（閒置）的 limiter
func (kl *keyedLimiter) maybeCleanup() {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	if time.Since(kl.lastCleanup) < 5*time.Minute {
		return
	}
	kl.lastCleanup = time.Now()

	kl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(kl.burst) {
			kl.limiters.Delete(key)
		}
		return true
	})
}

// CallerRateLimit 依呼叫者 email 限流（必須在 Authenticate 之後）
//
// perMinute <= 0 時不限流。
func CallerRateLimit(perMinute, burst int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	kl := newKeyedLimiter(perMinute, max(burst, 1))

	return func(c *gin.Context) {
		key := callerFrom(c).Email.String()
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		limiter := kl.get(key)
		if !limiter.Allow() {
			reservation := limiter.Reserve()
			delay := reservation.Delay()
			reservation.Cancel()

			c.Header("Retry-After", strconv.Itoa(max(int(delay.Seconds()), 1)))
			writeError(c, errRateLimited.WithContext("key", key))
			return
		}
		c.Next()
	}
}
