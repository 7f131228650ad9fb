package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleKeyPrefix = "verify:send:"

// incrWithWindow counts the attempt and sets the window in one step. A key left
// without a TTL gets one on the next attempt.
var incrWithWindow = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Throttle caps how many codes one identifier may request per window.
type Throttle interface {
	Allow(ctx context.Context, identifier string) (bool, error)
}

type redisThrottle struct {
	client redis.UniversalClient
	limit  int64
	window time.Duration
}

// NewThrottle returns a Redis backed throttle, or one that allows everything
// when client is nil or limit is not positive.
func NewThrottle(client redis.UniversalClient, limit int, window time.Duration) Throttle {
	if client == nil || limit <= 0 || window <= 0 {
		return noopThrottle{}
	}
	return &redisThrottle{
		client: client,
		limit:  int64(limit),
		window: window,
	}
}

func (t *redisThrottle) Allow(ctx context.Context, identifier string) (bool, error) {
	key := throttleKeyPrefix + strings.ToLower(strings.TrimSpace(identifier))

	count, err := incrWithWindow.Run(ctx, t.client, []string{key}, t.window.Milliseconds()).Int64()
	if err != nil {
		return true, fmt.Errorf("throttle incr: %w", err)
	}

	return count <= t.limit, nil
}

type noopThrottle struct{}

func (noopThrottle) Allow(context.Context, string) (bool, error) {
	return true, nil
}
