package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type PlayerLookupStore interface {
	Upsert(ctx context.Context, lookup *domain.PlayerLookup) error
	GetByName(ctx context.Context, name, tag string) (*domain.PlayerLookup, error)
	Search(ctx context.Context, query string, limit int) ([]domain.PlayerLookup, error)
}

type RankHistoryStore interface {
	InsertBatch(ctx context.Context, snapshots []domain.RankSnapshot) error
	GetByPuuid(ctx context.Context, puuid string, limit int) ([]domain.RankSnapshot, error)
}

type PlayerService struct {
	riot            RiotAPI
	lookups         PlayerLookupStore
	ranks           RankHistoryStore
	defaultPlatform string
	upstreamTimeout time.Duration
	logger          zerolog.Logger
	now             func() time.Time
}

func NewPlayerService(riot RiotAPI, lookups PlayerLookupStore, ranks RankHistoryStore, opts HistoryOptions, logger zerolog.Logger) *PlayerService {
	platform := opts.DefaultPlatform
	if platform == "" {
		platform = "kr"
	}
	return &PlayerService{
		riot:            riot,
		lookups:         lookups,
		ranks:           ranks,
		defaultPlatform: platform,
		upstreamTimeout: opts.RequestTimeout,
		logger:          logger,
		now:             time.Now,
	}
}

// GetProfile resolves the player and collects the best-effort extras. Only
// identity and summoner failures are returned to the caller.
func (s *PlayerService) GetProfile(ctx context.Context, gameName, tagLine, platform string, detailed bool) (*domain.PlayerProfile, error) {
	gameName, tagLine = strings.TrimSpace(gameName), strings.TrimSpace(tagLine)
	if gameName == "" || tagLine == "" {
		return nil, domain.NewValidationError("gameName", "gameName and tagLine are required")
	}
	if platform = strings.TrimSpace(platform); platform == "" {
		platform = s.defaultPlatform
	}

	if s.upstreamTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.upstreamTimeout)
		defer cancel()
	}

	identity, err := s.riot.ResolveIdentity(ctx, gameName, tagLine)
	if err != nil {
		s.logger.Warn().Err(err).Str("game_name", gameName).Str("tag_line", tagLine).Msg("failed to resolve identity")
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	summoner, err := s.riot.FetchSummoner(ctx, platform, identity.Puuid)
	if err != nil {
		s.logger.Warn().Err(err).Str("puuid", identity.Puuid).Msg("failed to fetch summoner")
		return nil, fmt.Errorf("fetch summoner: %w", err)
	}

	profile := &domain.PlayerProfile{
		Identity:  identity,
		Summoner:  summoner,
		Platform:  platform,
		Ranks:     []domain.RankEntry{},
		FetchedAt: s.now(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := s.riot.FetchRankEntries(gctx, platform, summoner.ID)
		if err != nil {
			s.logger.Warn().Err(err).Str("summoner_id", summoner.ID).Msg("rank lookup failed")
			return nil
		}
		profile.Ranks = entries
		return nil
	})
	if detailed {
		g.Go(func() error {
			masteries, err := s.riot.FetchChampionMastery(gctx, platform, identity.Puuid, constants.DefaultMasteryCount)
			if err != nil {
				s.logger.Warn().Err(err).Str("puuid", identity.Puuid).Msg("mastery lookup failed")
				return nil
			}
			profile.Masteries = masteries
			return nil
		})
		g.Go(func() error {
			ids, err := s.riot.FetchRecentMatchIDs(gctx, identity.Puuid, constants.ProfileMatchCount)
			if err != nil {
				s.logger.Warn().Err(err).Str("puuid", identity.Puuid).Msg("recent match lookup failed")
				return nil
			}
			profile.RecentMatches = ids
			return nil
		})
	}
	_ = g.Wait()

	s.record(ctx, profile)

	s.logger.Info().Str("puuid", identity.Puuid).Bool("detailed", detailed).Msg("player profile fetched")
	return profile, nil
}

func (s *PlayerService) record(ctx context.Context, p *domain.PlayerProfile) {
	now := s.now()
	lookup := &domain.PlayerLookup{
		Puuid:         p.Identity.Puuid,
		Name:          p.Identity.GameName,
		Tag:           p.Identity.TagLine,
		Platform:      p.Platform,
		SummonerLevel: p.Summoner.Level,
		ProfileIconID: p.Summoner.ProfileIconID,
		SoloRank:      domain.TierUnranked,
		LastFetchAt:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	snapshots := make([]domain.RankSnapshot, 0, len(p.Ranks))
	for _, r := range p.Ranks {
		if r.QueueType == domain.QueueSolo && !r.Unranked() {
			lookup.SoloRank = strings.TrimSpace(r.Tier + " " + r.Division)
		}
		if r.Unranked() {
			continue
		}
		snapshots = append(snapshots, domain.RankSnapshot{
			Puuid:        p.Identity.Puuid,
			QueueType:    r.QueueType,
			Tier:         r.Tier,
			Division:     r.Division,
			LeaguePoints: r.LeaguePoints,
			Wins:         r.Wins,
			Losses:       r.Losses,
			RecordedAt:   now,
		})
	}

	if err := s.lookups.Upsert(ctx, lookup); err != nil {
		s.logger.Warn().Err(err).Str("puuid", lookup.Puuid).Msg("failed to record player lookup")
	}
	if err := s.ranks.InsertBatch(ctx, snapshots); err != nil {
		s.logger.Warn().Err(err).Str("puuid", lookup.Puuid).Msg("failed to record rank snapshots")
	}
}

func (s *PlayerService) SearchSuggestions(ctx context.Context, query string) ([]domain.PlayerLookup, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.PlayerLookup{}, nil
	}

	s.logger.Debug().Str("query", query).Msg("searching players")

	players, err := s.lookups.Search(ctx, query, constants.SearchSuggestionLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search players")
		return nil, err
	}

	name, tag, hasTag := strings.Cut(query, "#")
	name, tag = strings.TrimSpace(name), strings.TrimSpace(tag)
	if !hasTag || name == "" || tag == "" {
		return players, nil
	}
	exact, err := s.lookups.GetByName(ctx, name, tag)
	if errors.Is(err, domain.ErrNotFound) {
		return players, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to look up exact riot id")
		return nil, err
	}
	return exactFirst(*exact, players, constants.SearchSuggestionLimit), nil
}

// exactFirst puts the exact Riot ID match at the head of the suggestions.
func exactFirst(exact domain.PlayerLookup, players []domain.PlayerLookup, limit int) []domain.PlayerLookup {
	out := make([]domain.PlayerLookup, 0, min(len(players)+1, limit))
	out = append(out, exact)
	for _, p := range players {
		if len(out) == limit {
			break
		}
		if p.Puuid != exact.Puuid {
			out = append(out, p)
		}
	}
	return out
}

func (s *PlayerService) RankHistory(ctx context.Context, puuid string, limit int) ([]domain.RankSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if strings.TrimSpace(puuid) == "" {
		return nil, domain.NewValidationError("puuid", "must not be blank")
	}
	if limit <= 0 || limit > constants.RankHistoryLimit {
		limit = constants.RankHistoryLimit
	}
	return s.ranks.GetByPuuid(ctx, puuid, limit)
}
