package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/lookup"
)

// FixtureClient serves canned data with the same contract as RiotClient.
// It is selected at startup for local development without a Riot key.
type FixtureClient struct {
	champions lookup.Names
	queues    lookup.Names
	now       func() time.Time
}

func NewFixtureClient(tables lookup.Tables) *FixtureClient {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	return &FixtureClient{
		champions: tables.Champions,
		queues:    tables.Queues,
		now:       func() time.Time { return base },
	}
}

var fixtureChampions = []int{103, 238, 157, 84, 268}

func (f *FixtureClient) RateLimitInfo() domain.RateLimitInfo {
	return domain.RateLimitInfo{}
}

func (f *FixtureClient) ResolveIdentity(ctx context.Context, gameName, tagLine string) (domain.PlayerIdentity, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlayerIdentity{}, err
	}
	if strings.TrimSpace(gameName) == "" || strings.TrimSpace(tagLine) == "" {
		return domain.PlayerIdentity{}, &domain.UpstreamError{Kind: domain.ErrNotFound, Endpoint: endpointAccount, Status: 404}
	}
	return domain.PlayerIdentity{
		Puuid:    fixturePUUID(gameName, tagLine),
		GameName: gameName,
		TagLine:  tagLine,
	}, nil
}

func (f *FixtureClient) FetchSummoner(ctx context.Context, platform, puuid string) (domain.SummonerProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.SummonerProfile{}, err
	}
	return domain.SummonerProfile{
		ID:            "summoner-" + puuid,
		AccountID:     "account-" + puuid,
		Puuid:         puuid,
		Name:          strings.TrimPrefix(puuid, "fixture-"),
		Level:         150,
		ProfileIconID: 4568,
		RevisionDate:  f.now(),
	}, nil
}

func (f *FixtureClient) FetchRankEntries(ctx context.Context, platform, summonerID string) ([]domain.RankEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []domain.RankEntry{
		{QueueType: domain.QueueSolo, Tier: "GOLD", Division: "II", LeaguePoints: 45, Wins: 30, Losses: 28},
		{QueueType: domain.QueueFlex, Tier: domain.TierUnranked},
	}, nil
}

func (f *FixtureClient) FetchRecentMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	count = clamp(count, 1, constants.MaxMatchIDCount)
	ids := make([]string, count)
	for i := range ids {
		ids[i] = fmt.Sprintf("KR_FIXTURE_%d", i+1)
	}
	return ids, nil
}

func (f *FixtureClient) FetchMatchDetail(ctx context.Context, matchID, targetPUUID string) (domain.MatchSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.MatchSummary{}, err
	}
	n, err := strconv.Atoi(strings.TrimPrefix(matchID, "KR_FIXTURE_"))
	if err != nil || n < 1 {
		return domain.MatchSummary{}, &domain.UpstreamError{Kind: domain.ErrNotFound, Endpoint: endpointMatch, Status: 404}
	}

	championID := fixtureChampions[(n-1)%len(fixtureChampions)]
	queueID := 420
	if n%3 == 0 {
		queueID = 450
	}
	return domain.MatchSummary{
		MatchID:      matchID,
		GameCreation: f.now().Add(-time.Duration(n) * time.Hour),
		Duration:     1500 + n*37,
		QueueID:      queueID,
		QueueName:    f.queues.NameFor(queueID),
		ChampionID:   championID,
		ChampionName: f.champions.NameFor(championID),
		Win:          n%2 == 1,
		Kills:        3 + n%5,
		Deaths:       2 + n%4,
		Assists:      5 + n%7,
		CS:           160 + n*3,
		Damage:       18000 + n*250,
		Gold:         11000 + n*120,
	}, nil
}

func (f *FixtureClient) FetchChampionMastery(ctx context.Context, platform, puuid string, count int) ([]domain.ChampionMastery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	count = clamp(count, 1, len(fixtureChampions))
	result := make([]domain.ChampionMastery, count)
	for i := range result {
		id := fixtureChampions[i]
		result[i] = domain.ChampionMastery{
			ChampionID:           id,
			ChampionName:         f.champions.NameFor(id),
			Level:                7 - i,
			Points:               250000 - i*40000,
			LastPlayTime:         f.now().Add(-time.Duration(i+1) * 24 * time.Hour),
			PointsSinceLastLevel: 12000,
			PointsUntilNextLevel: 0,
		}
	}
	return result, nil
}

func fixturePUUID(gameName, tagLine string) string {
	return "fixture-" + strings.ToLower(strings.TrimSpace(gameName)) + "-" + strings.ToLower(strings.TrimSpace(tagLine))
}
