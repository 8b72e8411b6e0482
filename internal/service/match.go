package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// MatchService exposes single upstream resources without aggregation.
type MatchService struct {
	riot            RiotAPI
	defaultPlatform string
	timeout         time.Duration
	logger          zerolog.Logger
}

func NewMatchService(riot RiotAPI, opts HistoryOptions, logger zerolog.Logger) *MatchService {
	platform := opts.DefaultPlatform
	if platform == "" {
		platform = "kr"
	}
	return &MatchService{
		riot:            riot,
		defaultPlatform: platform,
		timeout:         opts.RequestTimeout,
		logger:          logger,
	}
}

func (s *MatchService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *MatchService) platform(p string) string {
	if p = strings.TrimSpace(p); p != "" {
		return p
	}
	return s.defaultPlatform
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, "must not be blank")
	}
	return nil
}

func (s *MatchService) RecentMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	if err := required("puuid", puuid); err != nil {
		return nil, err
	}
	if count == 0 {
		count = constants.DefaultMatchCount
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ids, err := s.riot.FetchRecentMatchIDs(ctx, puuid, count)
	if err != nil {
		s.logger.Warn().Err(err).Str("puuid", puuid).Msg("failed to fetch match ids")
		return nil, fmt.Errorf("fetch match ids: %w", err)
	}
	return ids, nil
}

func (s *MatchService) MatchDetail(ctx context.Context, matchID, puuid string) (domain.MatchSummary, error) {
	if err := required("matchId", matchID); err != nil {
		return domain.MatchSummary{}, err
	}
	if err := required("puuid", puuid); err != nil {
		return domain.MatchSummary{}, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	m, err := s.riot.FetchMatchDetail(ctx, matchID, puuid)
	if err != nil {
		s.logger.Warn().Err(err).Str("match_id", matchID).Msg("failed to fetch match detail")
		return domain.MatchSummary{}, fmt.Errorf("fetch match %s: %w", matchID, err)
	}
	return m, nil
}

func (s *MatchService) RankEntries(ctx context.Context, platform, summonerID string) ([]domain.RankEntry, error) {
	if err := required("summonerId", summonerID); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	entries, err := s.riot.FetchRankEntries(ctx, s.platform(platform), summonerID)
	if err != nil {
		s.logger.Warn().Err(err).Str("summoner_id", summonerID).Msg("failed to fetch rank entries")
		return nil, fmt.Errorf("fetch rank entries: %w", err)
	}
	return entries, nil
}

func (s *MatchService) ChampionMastery(ctx context.Context, platform, puuid string, count int) ([]domain.ChampionMastery, error) {
	if err := required("puuid", puuid); err != nil {
		return nil, err
	}
	if count == 0 {
		count = constants.DefaultMasteryCount
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ms, err := s.riot.FetchChampionMastery(ctx, s.platform(platform), puuid, count)
	if err != nil {
		s.logger.Warn().Err(err).Str("puuid", puuid).Msg("failed to fetch champion mastery")
		return nil, fmt.Errorf("fetch champion mastery: %w", err)
	}
	return ms, nil
}

func (s *MatchService) RateLimit() domain.RateLimitInfo {
	return s.riot.RateLimitInfo()
}
