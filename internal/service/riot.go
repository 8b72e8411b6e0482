package service

import (
	"context"

	"lol-tracker/internal/domain"
)

// RiotAPI is implemented by api.RiotClient and api.FixtureClient.
type RiotAPI interface {
	ResolveIdentity(ctx context.Context, gameName, tagLine string) (domain.PlayerIdentity, error)
	FetchSummoner(ctx context.Context, platform, puuid string) (domain.SummonerProfile, error)
	FetchRankEntries(ctx context.Context, platform, summonerID string) ([]domain.RankEntry, error)
	FetchRecentMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	FetchMatchDetail(ctx context.Context, matchID, targetPUUID string) (domain.MatchSummary, error)
	FetchChampionMastery(ctx context.Context, platform, puuid string, count int) ([]domain.ChampionMastery, error)
	RateLimitInfo() domain.RateLimitInfo
}
