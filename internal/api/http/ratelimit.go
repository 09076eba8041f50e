package http

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/fieldops/atm-visit-service/internal/config"
	"github.com/fieldops/atm-visit-service/internal/observability"
	apperrors "github.com/fieldops/atm-visit-service/pkg/util"
)

// RateLimiter enforces a per-client request budget keyed by IP. With Redis it
// uses a fixed window shared across instances; without it each instance falls
// back to an in-process token bucket.
type RateLimiter struct {
	cfg    config.RateLimitConfig
	client *redis.Client

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRateLimiter constructs the limiter. client may be nil.
func NewRateLimiter(cfg config.RateLimitConfig, client *redis.Client) *RateLimiter {
	return &RateLimiter{
		cfg:      cfg,
		client:   client,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Handle applies the limit. Runs before authentication so it also shields
// the identity-provider call.
func (rl *RateLimiter) Handle(c *fiber.Ctx) error {
	if !rl.cfg.Enabled {
		return c.Next()
	}

	key := c.IP()
	if key == "" {
		key = "unknown"
	}

	if rl.client != nil {
		allowed, err := rl.allowRedis(c, key)
		if err == nil {
			if !allowed {
				observability.RateLimitDecisionsTotal.WithLabelValues("redis", "rejected").Inc()
				c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(rl.cfg.Window().Seconds())))
				return apperrors.NewRateLimited("rate limit exceeded")
			}
			observability.RateLimitDecisionsTotal.WithLabelValues("redis", "allowed").Inc()
			return c.Next()
		}
		// Redis outage degrades to the local limiter rather than
		// rejecting every request.
	}

	if !rl.allowLocal(key) {
		observability.RateLimitDecisionsTotal.WithLabelValues("local", "rejected").Inc()
		c.Set(fiber.HeaderRetryAfter, "1")
		return apperrors.NewRateLimited("rate limit exceeded")
	}
	observability.RateLimitDecisionsTotal.WithLabelValues("local", "allowed").Inc()
	return c.Next()
}

// allowRedis counts the request against a fixed window bucket:
// allowed = floor(rps*windowSeconds) + burst per window.
func (rl *RateLimiter) allowRedis(c *fiber.Ctx, key string) (bool, error) {
	windowSeconds := int(rl.cfg.Window().Seconds())
	allowedPerWindow := int(rl.cfg.RequestsPerSecond*float64(windowSeconds)) + rl.cfg.Burst

	bucket := time.Now().Unix() / int64(windowSeconds)
	redisKey := fmt.Sprintf("rl:ip:%s:%d", key, bucket)

	cnt, err := rl.client.Incr(c.UserContext(), redisKey).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		_ = rl.client.Expire(c.UserContext(), redisKey, time.Duration(windowSeconds+1)*time.Second).Err()
	}
	return cnt <= int64(allowedPerWindow), nil
}

func (rl *RateLimiter) allowLocal(key string) bool {
	rl.mu.Lock()
	lim, ok := rl.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.Burst)
		rl.limiters[key] = lim
	}
	rl.mu.Unlock()
	return lim.Allow()
}
