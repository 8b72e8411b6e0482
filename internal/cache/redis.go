package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lol-tracker/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisStore is the subset of redis.Cmdable the cache needs.
type redisStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type Redis struct {
	client redisStore
	logger zerolog.Logger
}

func NewRedis(client redisStore, logger zerolog.Logger) *Redis {
	return &Redis{client: client, logger: logger}
}

func (r *Redis) Get(ctx context.Context, key string) (*domain.MatchHistory, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var h domain.MatchHistory
	if err := json.Unmarshal(raw, &h); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		return nil, false, nil
	}
	return &h, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, history *domain.MatchHistory, ttl time.Duration) error {
	if history == nil || ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
