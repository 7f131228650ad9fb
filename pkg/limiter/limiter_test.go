package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Now()
	l := newRateLimiter(rate.Every(time.Minute/3), 3, 10*time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/verify/send", nil)
		l.handle(c)
		require.False(t, c.IsAborted(), "request %d should pass", i)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/verify/send", nil)
	l.handle(c)
	require.True(t, c.IsAborted())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// one token refills after 20s
	now = now.Add(21 * time.Second)
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/verify/send", nil)
	l.handle(c)
	require.False(t, c.IsAborted())
}

func TestRateLimiter_SeparateBucketsPerIP(t *testing.T) {
	l := newRateLimiter(rate.Every(time.Hour), 1, time.Hour)

	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"))
}

func TestRateLimiter_SweepDropsIdleVisitors(t *testing.T) {
	base := time.Now()
	l := newRateLimiter(rate.Every(time.Hour), 1, time.Minute)
	l.now = func() time.Time { return base }
	l.lastSweep = base

	require.True(t, l.allow("idle"))
	require.Contains(t, l.visitors, "idle")

	l.now = func() time.Time { return base.Add(2 * time.Minute) }
	require.True(t, l.allow("fresh"))

	assert.NotContains(t, l.visitors, "idle")
	assert.Contains(t, l.visitors, "fresh")
}
