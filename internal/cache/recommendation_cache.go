// Package cache is the Redis-backed read-through cache for recommendation lists.
// A nil *RecommendationCache, a nil client or a zero TTL turn every call into a no-op,
// and Redis failures are reported as misses so callers fall through to the store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"vibelink/internal/logger"
	"vibelink/internal/metrics"
)

const breakerName = "redis-cache"

// NoGeneration marks a generation that could not be read. Set ignores it.
const NoGeneration int64 = -1

// generationTTL must outlive any in-flight computation that read the generation.
const generationTTL = 24 * time.Hour

// setIfGeneration writes KEYS[1] only while KEYS[2] still holds ARGV[1].
// A missing generation counts as 0.
var setIfGeneration = redis.NewScript(`
if (redis.call("GET", KEYS[2]) or "0") ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

func generationKey(key string) string {
	return key + ":gen"
}

// ItemKey is the cache key for an item's similar-items list.
func ItemKey(mediaItemID string) string {
	return "recs:item:" + mediaItemID
}

// UserKey is the cache key for a user's personalized list.
func UserKey(userID string) string {
	return "recs:user:" + userID
}

type RecommendationCache struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker[[]byte]
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(redisURL, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 500 * time.Millisecond
	opts.WriteTimeout = 500 * time.Millisecond

	rdb := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func New(client *redis.Client, ttl time.Duration, log *logger.Logger) *RecommendationCache {
	if log == nil {
		log = logger.Nop()
	}
	metrics.SetCircuitBreakerState(breakerName, gobreaker.StateClosed)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// a cache miss is not a Redis failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit_breaker_transition", "name", name, "from", from.String(), "to", to.String())
			metrics.SetCircuitBreakerState(name, to)
		},
	})

	return &RecommendationCache{client: client, cb: cb, ttl: ttl, log: log}
}

func (c *RecommendationCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Get decodes the cached value at key into dst and reports whether it was a hit.
// It also returns the key's invalidation generation; pass it back to Set so a
// result computed before a concurrent Invalidate is not written over it.
// The generation is NoGeneration when Redis could not be read.
func (c *RecommendationCache) Get(ctx context.Context, key string, dst any) (bool, int64) {
	if !c.enabled() {
		return false, NoGeneration
	}
	var vals []any
	if _, err := c.execute(func() ([]byte, error) {
		var err error
		vals, err = c.client.MGet(ctx, key, generationKey(key)).Result()
		return nil, err
	}); err != nil {
		c.log.Warn("cache_get_failed", "key", key, "error", err)
		return false, NoGeneration
	}

	gen := int64(0)
	if raw, ok := vals[1].(string); ok {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.log.Warn("cache_generation_invalid", "key", key, "value", raw)
			return false, NoGeneration
		}
		gen = n
	}

	raw, ok := vals[0].(string)
	if !ok {
		return false, gen
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		c.log.Warn("cache_decode_failed", "key", key, "error", err)
		return false, gen
	}
	return true, gen
}

// Set stores value at key with the configured TTL, unless key was invalidated
// after gen was read. Failures are logged only.
func (c *RecommendationCache) Set(ctx context.Context, key string, gen int64, value any) {
	if !c.enabled() || gen == NoGeneration {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache_encode_failed", "key", key, "error", err)
		return
	}
	var stored int64
	if _, err := c.execute(func() ([]byte, error) {
		var err error
		stored, err = setIfGeneration.Run(ctx, c.client,
			[]string{key, generationKey(key)}, gen, raw, c.ttl.Milliseconds()).Int64()
		return nil, err
	}); err != nil {
		c.log.Warn("cache_set_failed", "key", key, "error", err)
		return
	}
	if stored == 0 {
		c.log.Debug("cache_set_skipped", "key", key, "reason", "invalidated")
	}
}

// Invalidate deletes keys and bumps their generations. Failures are logged
// only; entries then expire by TTL.
func (c *RecommendationCache) Invalidate(ctx context.Context, keys ...string) {
	if !c.enabled() || len(keys) == 0 {
		return
	}
	if _, err := c.execute(func() ([]byte, error) {
		_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, k := range keys {
				pipe.Incr(ctx, generationKey(k))
				pipe.Expire(ctx, generationKey(k), generationTTL)
			}
			pipe.Del(ctx, keys...)
			return nil
		})
		return nil, err
	}); err != nil {
		c.log.Warn("cache_invalidate_failed", "keys", keys, "error", err)
	}
}

func (c *RecommendationCache) execute(fn func() ([]byte, error)) ([]byte, error) {
	result, err := c.cb.Execute(fn)
	switch {
	case err == nil, errors.Is(err, redis.Nil):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
	}
	return result, err
}

// State exposes the breaker state for health reporting.
func (c *RecommendationCache) State() string {
	if !c.enabled() {
		return "disabled"
	}
	return c.cb.State().String()
}
