package limiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gamestore-zarzis/backend/pkg/logger"
)

// RateLimitErrorCode is reported in the body of every 429 response.
const RateLimitErrorCode = 1003

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client IP. Buckets idle for longer than
// ttl are dropped during the next sweep.
type rateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiter(limit rate.Limit, burst int, ttl time.Duration) *rateLimiter {
	return &rateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Limit allows rps requests per second per client IP with the given burst.
func Limit(rps int, burst int, ttl time.Duration) gin.HandlerFunc {
	return newRateLimiter(rate.Limit(rps), burst, ttl).handle
}

// LimitEvery allows one request per interval per client IP with the given burst,
// e.g. LimitEvery(time.Minute/3, 3, ttl) for "3 per minute".
func LimitEvery(interval time.Duration, burst int, ttl time.Duration) gin.HandlerFunc {
	return newRateLimiter(rate.Every(interval), burst, ttl).handle
}

func (l *rateLimiter) handle(c *gin.Context) {
	ip := c.ClientIP()
	if !l.allow(ip) {
		logger.Warn("rate limit hit", zap.String("ip", ip), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error_code": RateLimitErrorCode, "detail": "rate limit exceeded"})
		return
	}

	c.Next()
}

func (l *rateLimiter) allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepLocked(now)

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func (l *rateLimiter) sweepLocked(now time.Time) {
	if l.ttl <= 0 || now.Sub(l.lastSweep) < l.ttl {
		return
	}
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}
