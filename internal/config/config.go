package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	ClientModeLive    = "live"
	ClientModeFixture = "fixture"

	FailurePolicyFailFast = "fail-fast"
	FailurePolicyPartial  = "partial"

	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type Config struct {
	RiotAPIKey      string        `env:"RIOT_API_KEY"`
	RegionalRoute   string        `env:"RIOT_REGIONAL_ROUTE" envDefault:"asia"`
	DefaultPlatform string        `env:"RIOT_DEFAULT_PLATFORM" envDefault:"kr"`
	RiotHostFormat  string        `env:"RIOT_HOST_FORMAT" envDefault:"https://%s.api.riotgames.com"`
	ClientMode      string        `env:"RIOT_CLIENT_MODE" envDefault:"live"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	MatchFetchConcurrency int    `env:"MATCH_FETCH_CONCURRENCY" envDefault:"4"`
	MatchFailurePolicy    string `env:"MATCH_FAILURE_POLICY" envDefault:"fail-fast"`

	CacheBackend string        `env:"CACHE_BACKEND" envDefault:"none"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"2m"`
	RedisURL     string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	DBPath         string   `env:"DB_PATH" envDefault:"lol.db"`
	ServerPort     string   `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	LookupLocale   string   `env:"LOOKUP_LOCALE" envDefault:"en"`

	JWTSecret     string        `env:"JWT_SECRET"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"10"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("regional_route", cfg.RegionalRoute).
		Str("default_platform", cfg.DefaultPlatform).
		Str("client_mode", cfg.ClientMode).
		Str("cache_backend", cfg.CacheBackend).
		Str("failure_policy", cfg.MatchFailurePolicy).
		Int("match_concurrency", cfg.MatchFetchConcurrency).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("configuration loaded")

	return cfg, nil
}

// Parse reads the process environment without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.RiotAPIKey = strings.TrimSpace(c.RiotAPIKey)
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)
	c.ClientMode = strings.ToLower(strings.TrimSpace(c.ClientMode))
	c.CacheBackend = strings.ToLower(strings.TrimSpace(c.CacheBackend))
	c.MatchFailurePolicy = strings.ToLower(strings.TrimSpace(c.MatchFailurePolicy))
	c.RegionalRoute = strings.ToLower(strings.TrimSpace(c.RegionalRoute))
}

func (c *Config) Validate() error {
	switch c.ClientMode {
	case ClientModeLive:
		if c.RiotAPIKey == "" {
			return fmt.Errorf("RIOT_API_KEY is required")
		}
	case ClientModeFixture:
	default:
		return fmt.Errorf("RIOT_CLIENT_MODE must be %q or %q, got %q", ClientModeLive, ClientModeFixture, c.ClientMode)
	}

	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET is required and must be at least 32 bytes")
	}

	switch c.MatchFailurePolicy {
	case FailurePolicyFailFast, FailurePolicyPartial:
	default:
		return fmt.Errorf("MATCH_FAILURE_POLICY must be %q or %q", FailurePolicyFailFast, FailurePolicyPartial)
	}

	switch c.CacheBackend {
	case CacheBackendNone, CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of none, memory, redis")
	}

	if c.MatchFetchConcurrency < 1 {
		c.MatchFetchConcurrency = 1
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	return nil
}

var Module = fx.Provide(Load)
