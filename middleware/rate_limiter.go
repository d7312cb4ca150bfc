// middleware/rate_limiter.go
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	logger "github.com/nikhilsag/hrbridge/logging"
)

// RateLimiter enforces a per-client token bucket: limit requests per window,
// keyed by client IP. Limiters for idle clients are reclaimed periodically.
func RateLimiter(limit int, per time.Duration) gin.HandlerFunc {
	type clientLimiter struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*clientLimiter)
	)
	every := rate.Every(per / time.Duration(limit))

	go func() {
		for range time.Tick(per) {
			mu.Lock()
			for key, cl := range clients {
				if time.Since(cl.lastSeen) > 3*per {
					delete(clients, key)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		key := c.ClientIP()

		mu.Lock()
		cl, ok := clients[key]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(every, limit)}
			clients[key] = cl
		}
		cl.lastSeen = time.Now()
		allowed := cl.limiter.Allow()
		mu.Unlock()

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Duration", per.String())

		if !allowed {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", key),
				zap.Int("limit", limit),
				zap.Duration("per", per))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
