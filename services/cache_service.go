package services

import (
	"context"
	"encoding/json"
	"fmt"
	"orderdesk_server/config"
	"orderdesk_server/structs"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// CacheService caches order responses in Redis with retry logic. When caching
// is disabled the client stays nil and every method is a no-op, so callers
// never have to branch on configuration.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

// getRedisClient returns a singleton Redis client, or nil when caching is
// disabled in the configuration.
func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		if !cfg.Cache.Enabled {
			return
		}

		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			PoolSize:     cfg.Cache.PoolSize,
			MinIdleConns: cfg.Cache.MinIdleConns,

			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,
		})
	})
	return redisClient
}

func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableCacheError(err) {
			return err
		}

		maxBackoff := 2000 // max 2000ms = 2s
		base := 100        // 100ms base

		backoff := base * (1 << attempt) // exponential
		backoff = min(backoff, maxBackoff)

		time.Sleep(time.Duration(backoff) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableCacheError determines if an error is worth retrying
func isRetryableCacheError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry on nil results (key not found)
	if err == redis.Nil {
		return false
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

func orderCacheKey(orderId uuid.UUID) string {
	return fmt.Sprintf("order:%s", orderId.String())
}

// GetOrder retrieves a cached order response, or nil on miss. Cache failures
// are logged and treated as a miss.
func (cs *CacheService) GetOrder(ctx context.Context, orderId uuid.UUID) *structs.OrderResponse {
	if cs.client == nil {
		return nil
	}

	key := orderCacheKey(orderId)

	var val string
	err := cs.withRetry(func() error {
		result, err := cs.client.Get(ctx, key).Result()
		if err == redis.Nil {
			val = ""
			return nil
		}
		if err != nil {
			return err
		}
		val = result
		return nil
	}, 3)

	if err != nil {
		cs.logger.Warn("Failed to read order from cache",
			gecho.Field("error", err),
			gecho.Field("key", key))
		return nil
	}

	if val == "" {
		return nil
	}

	order := &structs.OrderResponse{}
	if err := json.Unmarshal([]byte(val), order); err != nil {
		cs.logger.Warn("Failed to decode cached order",
			gecho.Field("error", err),
			gecho.Field("key", key))
		return nil
	}

	return order
}

// SetOrder caches an order response with the configured TTL. Best-effort:
// failures are logged, never returned.
func (cs *CacheService) SetOrder(ctx context.Context, order *structs.OrderResponse) {
	if cs.client == nil || order == nil {
		return
	}

	key := orderCacheKey(order.Id)

	data, err := json.Marshal(order)
	if err != nil {
		cs.logger.Warn("Failed to encode order for cache",
			gecho.Field("error", err),
			gecho.Field("key", key))
		return
	}

	err = cs.withRetry(func() error {
		return cs.client.Set(ctx, key, data, cs.orderTTL()).Err()
	}, 3)

	if err != nil {
		cs.logger.Warn("Failed to write order to cache",
			gecho.Field("error", err),
			gecho.Field("key", key))
	}
}

// InvalidateOrder removes an order from the cache after a mutation.
func (cs *CacheService) InvalidateOrder(ctx context.Context, orderId uuid.UUID) {
	if cs.client == nil {
		return
	}

	key := orderCacheKey(orderId)

	err := cs.withRetry(func() error {
		return cs.client.Del(ctx, key).Err()
	}, 3)

	if err != nil {
		cs.logger.Warn("Failed to invalidate cached order",
			gecho.Field("error", err),
			gecho.Field("key", key))
	}
}

// Ping tests the Redis connection
func (cs *CacheService) Ping(ctx context.Context) error {
	if cs.client == nil {
		return nil
	}

	return cs.withRetry(func() error {
		return cs.client.Ping(ctx).Err()
	}, 3)
}

func (cs *CacheService) orderTTL() time.Duration {
	if cs.config.Cache.OrderTTL > 0 {
		return cs.config.Cache.OrderTTL
	}
	return 5 * time.Minute // fallback default
}
