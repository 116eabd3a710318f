package counter

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"weathercontract.app/internal/config"
	"weathercontract.app/pkg/errors"
)

const keyPrefix = "contract:attempts:"

// RedisCounter implements AttemptCounter on Redis so attempts are shared
// between runner processes that use the same run ID.
type RedisCounter struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCounter connects to Redis and verifies the connection
func NewRedisCounter(cfg *config.RedisConfig) (*RedisCounter, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewExternalAPIError("failed to connect to Redis", err)
	}

	return &RedisCounter{
		client: client,
		ttl:    time.Duration(cfg.KeyTTL) * time.Second,
	}, nil
}

// Increment atomically bumps the counter and refreshes its expiry
func (r *RedisCounter) Increment(ctx context.Context, key string) (int64, error) {
	if key == "" {
		return 0, errors.NewValidationError("counter key cannot be empty")
	}

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, keyPrefix+key)
		if r.ttl > 0 {
			pipe.Expire(ctx, keyPrefix+key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return 0, errors.NewExternalAPIError("redis increment failed", err)
	}

	return incr.Val(), nil
}

// Reset deletes the counter for key
func (r *RedisCounter) Reset(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("counter key cannot be empty")
	}

	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return errors.NewExternalAPIError("redis delete failed", err)
	}
	return nil
}

// Close closes the Redis client connection
func (r *RedisCounter) Close() error {
	if err := r.client.Close(); err != nil {
		return errors.NewExternalAPIError("failed to close Redis connection", err)
	}
	return nil
}
