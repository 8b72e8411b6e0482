// Package cache stores assembled match histories between requests.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lol-tracker/internal/config"
	"lol-tracker/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache returns (nil, false, nil) on a miss. Implementations must be safe
// for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*domain.MatchHistory, bool, error)
	Set(ctx context.Context, key string, history *domain.MatchHistory, ttl time.Duration) error
}

// HistoryKey normalizes the request parameters that determine a history.
func HistoryKey(gameName, tagLine string, count int, platform string) string {
	return fmt.Sprintf("history:%s:%s:%d:%s",
		strings.ToLower(strings.TrimSpace(gameName)),
		strings.ToLower(strings.TrimSpace(tagLine)),
		count,
		strings.ToLower(strings.TrimSpace(platform)),
	)
}

// New picks the backend named by CACHE_BACKEND.
func New(cfg *config.Config, logger zerolog.Logger) (Cache, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		logger.Info().Msg("using in-memory history cache")
		return NewMemory(time.Now), nil
	case config.CacheBackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		logger.Info().Str("addr", opts.Addr).Msg("using redis history cache")
		return NewRedis(redis.NewClient(opts), logger), nil
	default:
		return Noop{}, nil
	}
}

type Noop struct{}

func (Noop) Get(context.Context, string) (*domain.MatchHistory, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, string, *domain.MatchHistory, time.Duration) error {
	return nil
}
