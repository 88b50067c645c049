package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)

const defaultIdempotencyKeyPrefix = "event:idempotency:"

// RedisIdempotencyStore shares processed event IDs across instances via
// Redis. Marking relies on SETNX so concurrent deliveries of the same
// event resolve to a single winner.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisIdempotencyStore dials Redis with the given config and verifies
// the connection before returning.
func NewRedisIdempotencyStore(cfg config.RedisConfig) (*RedisIdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisIdempotencyStoreWithClient(client, ""), nil
}

// NewRedisIdempotencyStoreWithClient wraps an existing client, for tests
// or when the client is shared with other components. An empty keyPrefix
// selects the default one.
func NewRedisIdempotencyStoreWithClient(client *redis.Client, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = defaultIdempotencyKeyPrefix
	}
	return &RedisIdempotencyStore{client: client, keyPrefix: keyPrefix}
}

// MarkProcessed records the event ID with ttl. It reports true when this
// call claimed the ID, false when another delivery already holds it.
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	claimed, err := s.client.SetNX(ctx, s.keyPrefix+eventID, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark event as processed: %w", err)
	}
	return claimed, nil
}

// IsProcessed reports whether the event ID is currently recorded.
func (s *RedisIdempotencyStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.keyPrefix+eventID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check if event is processed: %w", err)
	}
	return n > 0, nil
}

func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}
