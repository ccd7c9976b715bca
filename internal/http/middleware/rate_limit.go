package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vamsi1219/task-flow-manager-duo/internal/utils"
)

// RateLimiter is a fixed-window per-IP counter, enough to slow down
// credential stuffing on the auth endpoints.
type RateLimiter struct {
	limit int
	mu    sync.Mutex
	items map[string]*rateEntry
}

type rateEntry struct {
	count int
	reset time.Time
}

func NewRateLimiter(limit int) *RateLimiter {
	return &RateLimiter{
		limit: limit,
		items: make(map[string]*rateEntry),
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()

		rl.mu.Lock()
		ip := c.ClientIP()
		entry, ok := rl.items[ip]
		if !ok || now.After(entry.reset) {
			entry = &rateEntry{reset: now.Add(time.Minute)}
			rl.items[ip] = entry
		}
		entry.count++
		count := entry.count
		reset := entry.reset
		rl.mu.Unlock()

		if count > rl.limit {
			retry := int(time.Until(reset).Seconds())
			c.Header("Retry-After", strconv.Itoa(retry))
			utils.RespondError(c, utils.NewAppError(http.StatusTooManyRequests, utils.CodeRateLimit, "too many requests", nil))
			c.Abort()
			return
		}

		c.Next()
	}
}
