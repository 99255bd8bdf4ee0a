package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/cipher-engine/pkg/progress"
	"github.com/jwebster45206/cipher-engine/pkg/storage"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long idle progress is kept.
const DefaultTTL = 30 * 24 * time.Hour

// RedisStorage implements the Storage interface using Redis
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance. redisURL may be a
// redis:// URL or a bare host:port.
func NewRedisStorage(redisURL string, ttl time.Duration, logger *slog.Logger) (*RedisStorage, error) {
	var opt *redis.Options
	if strings.Contains(redisURL, "://") {
		var err error
		opt, err = redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
	} else {
		opt = &redis.Options{Addr: redisURL}
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisStorage{
		client: redis.NewClient(opt),
		logger: logger,
		ttl:    ttl,
	}, nil
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func progressKey(id uuid.UUID) string {
	return "progress:" + id.String()
}

func attemptsKey(id uuid.UUID) string {
	return "attempts:" + id.String()
}

// Progress operations

func (r *RedisStorage) SaveProgress(ctx context.Context, p *progress.Progress) error {
	if p == nil {
		return errors.New("progress cannot be nil")
	}

	data, err := json.Marshal(p)
	if err != nil {
		r.logger.Error("Failed to marshal progress", "id", p.ID, "error", err)
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if err := r.client.Set(ctx, progressKey(p.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save progress", "id", p.ID, "error", err)
		return fmt.Errorf("failed to save progress: %w", err)
	}
	// attempt history lives as long as the progress it belongs to
	if err := r.client.Expire(ctx, attemptsKey(p.ID), r.ttl).Err(); err != nil {
		r.logger.Warn("Failed to refresh attempts TTL", "id", p.ID, "error", err)
	}
	return nil
}

func (r *RedisStorage) LoadProgress(ctx context.Context, id uuid.UUID) (*progress.Progress, error) {
	data, err := r.client.Get(ctx, progressKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Progress not found", "id", id)
			return nil, nil
		}
		r.logger.Error("Failed to load progress", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	var p progress.Progress
	if err := json.Unmarshal(data, &p); err != nil {
		r.logger.Error("Failed to unmarshal progress", "id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	return &p, nil
}

func (r *RedisStorage) DeleteProgress(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, progressKey(id), attemptsKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete progress", "id", id, "error", err)
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}

// Attempt history (Redis list, oldest first)

func (r *RedisStorage) AppendAttempt(ctx context.Context, id uuid.UUID, a storage.Attempt) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt: %w", err)
	}

	key := attemptsKey(id)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to append attempt", "id", id, "error", err)
		return fmt.Errorf("failed to append attempt: %w", err)
	}
	return nil
}

func (r *RedisStorage) ListAttempts(ctx context.Context, id uuid.UUID) ([]storage.Attempt, error) {
	items, err := r.client.LRange(ctx, attemptsKey(id), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	attempts := make([]storage.Attempt, 0, len(items))
	for _, item := range items {
		var a storage.Attempt
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			r.logger.Warn("Skipping malformed attempt", "id", id, "error", err)
			continue
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}
