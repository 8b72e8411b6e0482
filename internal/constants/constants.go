package constants

import "time"

const (
	DatabaseTimeout   = 5 * time.Second
	ShutdownTimeout   = 5 * time.Second
	ReadHeaderTimeout = 10 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	DefaultMatchCount = 5
	MaxHistoryCount   = 10
	MaxMatchIDCount   = 20
	MaxMasteryCount   = 10

	DefaultMasteryCount = 3
	ProfileMatchCount   = 5
)

const (
	SearchSuggestionLimit = 10
	RankHistoryLimit      = 50
	BoardListLimit        = 10
	MaxBoardPageSize      = 100
	RecentSignupWindow    = 7 * 24 * time.Hour
)

const (
	MemoryCacheMaxEntries    = 10000
	MemoryCacheSweepInterval = time.Minute
)

const (
	// Upstream error bodies are truncated to this many bytes before logging.
	MaxLoggedBodyBytes = 512
)
