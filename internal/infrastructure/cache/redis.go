package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/netslayer67/mws-backend/internal/domain/events"
	"github.com/netslayer67/mws-backend/pkg/config"
)

// Custom error types
var (
	ErrCacheNotFound = errors.New("cache: key not found")
	ErrInvalidConfig = errors.New("cache: invalid configuration")
)

// Pub/sub channels used for dashboard invalidation and personal
// notifications. Personal events are fanned out per user.
const (
	DashboardEventChannel = "dashboard:events"
	personalChannelPrefix = "personal:events:"
	personalChannelGlob   = personalChannelPrefix + "*"
)

// Config holds the configuration for the Redis client
type Config struct {
	Addr             string
	Password         string
	DB               int
	PoolSize         int
	MinIdleConns     int
	MaxRetries       int
	ConnTimeout      time.Duration
	OperationTimeout time.Duration
	DefaultTTL       time.Duration
	KeyPrefix        string
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		PoolSize:         50,
		MinIdleConns:     5,
		MaxRetries:       3,
		ConnTimeout:      5 * time.Second,
		OperationTimeout: 2 * time.Second,
		DefaultTTL:       10 * time.Minute,
		KeyPrefix:        "mws:",
	}
}

// NewConfigFromEnv creates a Redis config from project configuration
func NewConfigFromEnv(cfg *config.Config) *Config {
	c := DefaultConfig()
	c.Addr = fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	c.Password = cfg.Redis.Password
	c.DB = cfg.Redis.DB
	if cfg.Server.Timeout > 0 {
		c.OperationTimeout = cfg.Server.Timeout
	}
	return c
}

// Metrics tracks cache hit/miss statistics with atomic operations
type Metrics struct {
	hits   atomic.Int64
	misses atomic.Int64
}

// RedisClient wraps the Redis client with prefixing, metrics and the
// event pub/sub used by the dashboard and realtime layers.
type RedisClient struct {
	client    *redis.Client
	config    *Config
	metrics   *Metrics
	closeOnce sync.Once
}

// NewRedisClient creates a new Redis client with the provided configuration
func NewRedisClient(cfg *Config) (*RedisClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client:  client,
		config:  cfg,
		metrics: &Metrics{},
	}, nil
}

func (r *RedisClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.config.OperationTimeout)
}

func (r *RedisClient) prefixKey(key string) string {
	return r.config.KeyPrefix + key
}

// Get retrieves a cached value, recording a hit or miss.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	val, err := r.client.Get(ctx, r.prefixKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		r.metrics.misses.Add(1)
		return "", ErrCacheNotFound
	}
	if err != nil {
		return "", fmt.Errorf("cache get failed: %w", err)
	}
	r.metrics.hits.Add(1)
	return val, nil
}

// Set stores a value; a zero ttl uses the configured default.
func (r *RedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if ttl <= 0 {
		ttl = r.config.DefaultTTL
	}
	if err := r.client.Set(ctx, r.prefixKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// Delete removes keys from the cache.
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.prefixKey(k)
	}
	if err := r.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("cache delete failed: %w", err)
	}
	return nil
}

// ClearByPattern removes every key matching the glob pattern, scanning
// in batches so large keyspaces do not block the server.
func (r *RedisClient) ClearByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	prefixed := r.prefixKey(pattern)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, prefixed, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache delete failed: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// HealthCheck pings the server.
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.client.Ping(ctx).Err()
}

// GetMetrics reports hit/miss counters and the derived hit rate.
func (r *RedisClient) GetMetrics() map[string]interface{} {
	hits := r.metrics.hits.Load()
	misses := r.metrics.misses.Load()
	total := hits + misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return map[string]interface{}{
		"hits":     hits,
		"misses":   misses,
		"hit_rate": hitRate,
	}
}

// GetClient exposes the underlying client for rate limiting and tests.
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

// Close shuts the client down exactly once.
func (r *RedisClient) Close() error {
	var err error
	r.closeOnce.Do(func() {
		err = r.client.Close()
	})
	return err
}

// PublishDashboardEvent broadcasts a dashboard event to all listeners.
func (r *RedisClient) PublishDashboardEvent(ctx context.Context, event *events.DashboardEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard event: %w", err)
	}
	if err := r.client.Publish(ctx, DashboardEventChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish dashboard event: %w", err)
	}
	return nil
}

// SubscribeToDashboardEvents blocks, invoking callback for every
// dashboard event until the context is cancelled.
func (r *RedisClient) SubscribeToDashboardEvents(ctx context.Context, callback func(*events.DashboardEvent) error) error {
	sub := r.client.Subscribe(ctx, DashboardEventChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event events.DashboardEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			if err := callback(&event); err != nil {
				return err
			}
		}
	}
}

// PublishPersonalEvent sends an event on the target user's channel.
func (r *RedisClient) PublishPersonalEvent(ctx context.Context, event *events.PersonalEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal personal event: %w", err)
	}
	channel := personalChannelPrefix + event.UserID.String()
	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish personal event: %w", err)
	}
	return nil
}

// SubscribeToPersonalEvents blocks, invoking callback for personal
// events across all users, until the context is cancelled.
func (r *RedisClient) SubscribeToPersonalEvents(ctx context.Context, callback func(uuid.UUID, *events.PersonalEvent) error) error {
	sub := r.client.PSubscribe(ctx, personalChannelGlob)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			userID, err := uuid.Parse(msg.Channel[len(personalChannelPrefix):])
			if err != nil {
				continue
			}
			var event events.PersonalEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			if err := callback(userID, &event); err != nil {
				return err
			}
		}
	}
}

// InvalidateDashboardCache drops every cached dashboard stats entry.
func (r *RedisClient) InvalidateDashboardCache(ctx context.Context) error {
	return r.ClearByPattern(ctx, "dashboard:stats:*")
}
