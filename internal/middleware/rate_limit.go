package middleware

import (
	"sync"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyedLimiter menyimpan satu token bucket per key (IP atau user).
type KeyedLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit // request per detik
	b        int        // burst
}

func NewKeyedLimiter(r rate.Limit, b int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (k *KeyedLimiter) Allow(key string) bool {
	k.mu.Lock()
	limiter, exists := k.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(k.r, k.b)
		k.limiters[key] = limiter
	}
	k.mu.Unlock()

	return limiter.Allow()
}

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	return rateLimit(NewKeyedLimiter(r, b), func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitByUser harus dipasang setelah AuthMiddleware.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	return rateLimit(NewKeyedLimiter(r, b), func(c *gin.Context) string {
		return c.GetString("user_id")
	})
}

func rateLimit(limiter *KeyedLimiter, keyOf func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyOf(c)
		if key == "" {
			c.Next()
			return
		}
		if !limiter.Allow(key) {
			e := apperror.ErrTooManyRequests
			response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
