package fx

import (
	"database/sql"

	"lol-tracker/internal/api"
	"lol-tracker/internal/auth"
	"lol-tracker/internal/cache"
	"lol-tracker/internal/config"
	"lol-tracker/internal/database"
	"lol-tracker/internal/logger"
	"lol-tracker/internal/lookup"
	"lol-tracker/internal/repository"
	"lol-tracker/internal/server"
	"lol-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideTables(cfg *config.Config) lookup.Tables {
	return lookup.NewTables(lookup.ParseLocale(cfg.LookupLocale))
}

// ProvideRiotClient picks the live client or the offline fixture client.
func ProvideRiotClient(cfg *config.Config, tables lookup.Tables, logger zerolog.Logger) service.RiotAPI {
	if cfg.ClientMode == config.ClientModeFixture {
		logger.Warn().Msg("using fixture Riot client, no upstream calls will be made")
		return api.NewFixtureClient(tables)
	}
	return api.NewRiotClientFromConfig(cfg, tables, logger)
}

func ProvidePinger(sqlDB *sql.DB) server.Pinger {
	return sqlDB
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvidePinger),
	// repos
	fx.Provide(
		fx.Annotate(repository.NewPlayerRepository, fx.As(new(service.PlayerLookupStore))),
		fx.Annotate(repository.NewRankHistoryRepository, fx.As(new(service.RankHistoryStore))),
		fx.Annotate(repository.NewUserRepository, fx.As(new(service.UserStore))),
		fx.Annotate(repository.NewBoardRepository, fx.As(new(service.BoardStore))),
	),
	// upstream
	fx.Provide(ProvideTables),
	fx.Provide(ProvideRiotClient),
	fx.Provide(cache.New),
	// auth
	fx.Provide(auth.NewTokenIssuer),
	fx.Provide(auth.NewPasswordHasher),
	// svc
	fx.Provide(service.NewValidator),
	fx.Provide(service.NewHistoryOptions),
	fx.Provide(service.NewMatchHistoryService),
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewUserService),
	fx.Provide(service.NewBoardService),
	// server
	fx.Provide(server.NewServer),
)
