package security

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	redis        redis.Cmdable
	authPerMin   int64
	requestRate  rate.Limit
	requestBurst int

	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewRateLimiter(redisClient redis.Cmdable, authPerMinute int, requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		redis:        redisClient,
		authPerMin:   int64(authPerMinute),
		requestRate:  rate.Limit(requestsPerSecond),
		requestBurst: burst,
		visitors:     make(map[string]*visitor),
	}
}

// AllowAuthAttempt counts an attempt in a one minute window for key.
// Redis failures let the request through.
func (r *RateLimiter) AllowAuthAttempt(ctx context.Context, key string) bool {
	if r.redis == nil || r.authPerMin <= 0 {
		return true
	}

	redisKey := fmt.Sprintf("luxetickets:ratelimit:auth:%s", key)
	count, err := r.redis.Incr(ctx, redisKey).Result()
	if err != nil {
		slog.Warn("Auth rate limit check failed", "error", err, "key", key)
		return true
	}
	if count == 1 {
		r.redis.Expire(ctx, redisKey, time.Minute)
	}
	return count <= r.authPerMin
}

// AuthRateLimit guards login and register against credential stuffing.
func (r *RateLimiter) AuthRateLimit() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if !r.AllowAuthAttempt(e.Request.Context(), e.RealIP()) {
			return apis.NewApiError(http.StatusTooManyRequests, "Too many attempts. Please try again in a minute.", nil)
		}
		return e.Next()
	}
}

// AllowRequest applies the per-client token bucket.
func (r *RateLimiter) AllowRequest(key string) bool {
	if r.requestRate <= 0 {
		return true
	}

	r.mu.Lock()
	v, ok := r.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(r.requestRate, r.requestBurst)}
		r.visitors[key] = v
	}
	v.lastSeen = time.Now()
	r.mu.Unlock()

	return v.limiter.Allow()
}

func (r *RateLimiter) RequestRateLimit() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if !r.AllowRequest(e.RealIP()) {
			return apis.NewApiError(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
		}
		return e.Next()
	}
}

// AntiBotMiddleware rejects obvious scrapers.
func (r *RateLimiter) AntiBotMiddleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if IsSuspiciousUserAgent(e.Request.Header.Get("User-Agent")) {
			return apis.NewForbiddenError("Access denied", nil)
		}
		return e.Next()
	}
}

// Prune drops visitors idle for longer than idle.
func (r *RateLimiter) Prune(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-idle)
	for key, v := range r.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(r.visitors, key)
			removed++
		}
	}
	return removed
}

// RunJanitor prunes idle visitors until ctx is done.
func (r *RateLimiter) RunJanitor(ctx context.Context, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Prune(idle); n > 0 {
				slog.Debug("Pruned idle rate limit visitors", "count", n)
			}
		}
	}
}

func IsSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	lower := strings.ToLower(ua)
	for _, pattern := range suspicious {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
