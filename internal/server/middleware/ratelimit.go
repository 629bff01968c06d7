package middleware

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/project-tracker-api/pkg/api"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// defaultIdleTTL is how long a client's bucket survives without requests.
const defaultIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than idleTTL are swept on the next bucket creation, so the map is bounded by
// the number of IPs active within that window.
type RateLimiter struct {
	visitors  map[string]*visitor
	mu        sync.RWMutex
	rps       rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	logger    *zap.Logger
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(rps float64, burst int, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		rps:       rate.Limit(rps),
		burst:     burst,
		idleTTL:   defaultIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
		logger:    logger,
	}
}

// getLimiter returns the bucket for ip, creating it on first use.
func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	now := rl.now()

	rl.mu.RLock()
	v, exists := rl.visitors[ip]
	rl.mu.RUnlock()

	if exists {
		v.lastSeen.Store(now.UnixNano())
		return v.limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// another request may have created it while we waited for the lock
	if v, exists = rl.visitors[ip]; exists {
		v.lastSeen.Store(now.UnixNano())
		return v.limiter
	}

	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweep(now)
	}

	v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
	v.lastSeen.Store(now.UnixNano())
	rl.visitors[ip] = v

	return v.limiter
}

// sweep drops idle buckets. Callers hold the write lock.
func (rl *RateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-rl.idleTTL).UnixNano()
	for ip, v := range rl.visitors {
		if v.lastSeen.Load() < cutoff {
			delete(rl.visitors, ip)
		}
	}
	rl.lastSweep = now
}

// size reports the number of tracked buckets.
func (rl *RateLimiter) size() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.visitors)
}

// Middleware returns the Gin middleware handler.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !rl.getLimiter(ip).Allow() {
			rl.logger.Warn("Rate limit exceeded",
				zap.String("ip", ip),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", RequestIDFrom(c)),
			)
			err := api.RateLimitError()
			c.AbortWithStatusJSON(err.Status, api.ErrorResponse{Error: err.Message})
			return
		}

		c.Next()
	}
}
