package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lol-tracker/internal/cache"
	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type HistoryRequest struct {
	GameName string
	TagLine  string
	Count    int
	Platform string
}

type HistoryOptions struct {
	DefaultPlatform string
	Concurrency     int
	FailurePolicy   string
	CacheTTL        time.Duration
	RequestTimeout  time.Duration
}

func NewHistoryOptions(cfg *config.Config) HistoryOptions {
	return HistoryOptions{
		DefaultPlatform: cfg.DefaultPlatform,
		Concurrency:     cfg.MatchFetchConcurrency,
		FailurePolicy:   cfg.MatchFailurePolicy,
		CacheTTL:        cfg.CacheTTL,
		RequestTimeout:  cfg.RequestTimeout,
	}
}

type MatchHistoryService struct {
	riot   RiotAPI
	cache  cache.Cache
	opts   HistoryOptions
	logger zerolog.Logger
	now    func() time.Time
}

func NewMatchHistoryService(riot RiotAPI, c cache.Cache, opts HistoryOptions, logger zerolog.Logger) *MatchHistoryService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.FailurePolicy == "" {
		opts.FailurePolicy = config.FailurePolicyFailFast
	}
	if opts.DefaultPlatform == "" {
		opts.DefaultPlatform = "kr"
	}
	if c == nil {
		c = cache.Noop{}
	}
	return &MatchHistoryService{
		riot:   riot,
		cache:  c,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// NormalizeCount applies the default for an absent count and clamps the rest.
func NormalizeCount(count int) int {
	switch {
	case count == 0:
		return constants.DefaultMatchCount
	case count < 1:
		return 1
	case count > constants.MaxHistoryCount:
		return constants.MaxHistoryCount
	default:
		return count
	}
}

func (s *MatchHistoryService) normalize(req HistoryRequest) (HistoryRequest, error) {
	req.GameName = strings.TrimSpace(req.GameName)
	req.TagLine = strings.TrimSpace(req.TagLine)
	req.Platform = strings.TrimSpace(req.Platform)

	if req.GameName == "" {
		return req, domain.NewValidationError("gameName", "must not be blank")
	}
	if req.TagLine == "" {
		return req, domain.NewValidationError("tagLine", "must not be blank")
	}
	if req.Platform == "" {
		req.Platform = s.opts.DefaultPlatform
	}
	req.Count = NormalizeCount(req.Count)
	return req, nil
}

// GetPlayerMatchHistory resolves the player, fetches their recent matches and
// folds them into aggregate stats. Identity, summoner and match-id failures
// abort the request; rank failures degrade to an empty list.
func (s *MatchHistoryService) GetPlayerMatchHistory(ctx context.Context, req HistoryRequest) (*domain.MatchHistory, error) {
	req, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}

	logger := s.logger.With().
		Str("game_name", req.GameName).
		Str("tag_line", req.TagLine).
		Str("platform", req.Platform).
		Int("count", req.Count).
		Logger()

	key := cache.HistoryKey(req.GameName, req.TagLine, req.Count, req.Platform)
	cached, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Msg("history cache lookup failed")
	} else if hit {
		historyCacheHits.Inc()
		logger.Debug().Time("fetched_at", cached.FetchedAt).Msg("returning cached history")
		return cached, nil
	}

	identity, err := s.riot.ResolveIdentity(ctx, req.GameName, req.TagLine)
	if err != nil {
		historyRequests.WithLabelValues("error").Inc()
		logger.Warn().Err(err).Msg("failed to resolve identity")
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	summoner, err := s.riot.FetchSummoner(ctx, req.Platform, identity.Puuid)
	if err != nil {
		historyRequests.WithLabelValues("error").Inc()
		logger.Warn().Err(err).Str("puuid", identity.Puuid).Msg("failed to fetch summoner")
		return nil, fmt.Errorf("fetch summoner: %w", err)
	}

	var (
		ranks    []domain.RankEntry
		matchIDs []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := s.riot.FetchRankEntries(gctx, req.Platform, summoner.ID)
		if err != nil {
			logger.Warn().Err(err).Str("summoner_id", summoner.ID).Msg("rank lookup failed, treating as unranked")
			ranks = []domain.RankEntry{}
			return nil
		}
		ranks = entries
		return nil
	})
	g.Go(func() error {
		ids, err := s.riot.FetchRecentMatchIDs(gctx, identity.Puuid, req.Count)
		if err != nil {
			return fmt.Errorf("fetch match ids: %w", err)
		}
		matchIDs = ids
		return nil
	})
	if err := g.Wait(); err != nil {
		historyRequests.WithLabelValues("error").Inc()
		logger.Warn().Err(err).Msg("failed to list matches")
		return nil, err
	}

	if len(matchIDs) > req.Count {
		matchIDs = matchIDs[:req.Count]
	}

	matches, failed, err := s.fetchMatches(ctx, identity.Puuid, matchIDs, logger)
	if err != nil {
		historyRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	history := &domain.MatchHistory{
		Identity:    identity,
		Summoner:    summoner,
		Platform:    req.Platform,
		Ranks:       ranks,
		Matches:     matches,
		Stats:       Aggregate(matches),
		FailedCount: failed,
		FetchedAt:   s.now(),
	}

	if err := s.cache.Set(ctx, key, history, s.opts.CacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache history")
	}

	result := "ok"
	if history.Partial() {
		result = "partial"
	}
	historyRequests.WithLabelValues(result).Inc()
	logger.Info().
		Str("puuid", identity.Puuid).
		Int("matches", len(matches)).
		Int("failed", failed).
		Msg("match history assembled")
	return history, nil
}

// fetchMatches returns summaries in the order of ids. Under the partial
// policy failed fetches are skipped and counted; otherwise the first failure
// cancels the rest.
func (s *MatchHistoryService) fetchMatches(ctx context.Context, puuid string, ids []string, logger zerolog.Logger) ([]domain.MatchSummary, int, error) {
	partial := s.opts.FailurePolicy == config.FailurePolicyPartial

	results := make([]domain.MatchSummary, len(ids))
	fetched := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, id := range ids {
		g.Go(func() error {
			m, err := s.riot.FetchMatchDetail(gctx, id, puuid)
			if err != nil {
				matchFetchFailures.Inc()
				if partial {
					logger.Warn().Err(err).Str("match_id", id).Msg("skipping match")
					return nil
				}
				return fmt.Errorf("fetch match %s: %w", id, err)
			}
			results[i] = m
			fetched[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn().Err(err).Msg("match detail fetch failed")
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	matches := make([]domain.MatchSummary, 0, len(ids))
	failed := 0
	for i := range results {
		if !fetched[i] {
			failed++
			continue
		}
		matches = append(matches, results[i])
	}
	return matches, failed, nil
}
