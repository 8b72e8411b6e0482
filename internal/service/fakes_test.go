package service

import (
	"context"
	"sync"
	"time"

	"lol-tracker/internal/domain"
)

// fakeRiot dispatches to per-method funcs and records call counts.
type fakeRiot struct {
	mu    sync.Mutex
	calls map[string]int

	resolveFn  func(ctx context.Context, gameName, tagLine string) (domain.PlayerIdentity, error)
	summonerFn func(ctx context.Context, platform, puuid string) (domain.SummonerProfile, error)
	ranksFn    func(ctx context.Context, platform, summonerID string) ([]domain.RankEntry, error)
	idsFn      func(ctx context.Context, puuid string, count int) ([]string, error)
	matchFn    func(ctx context.Context, matchID, puuid string) (domain.MatchSummary, error)
	masteryFn  func(ctx context.Context, platform, puuid string, count int) ([]domain.ChampionMastery, error)
}

func (f *fakeRiot) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeRiot) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRiot) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeRiot) ResolveIdentity(ctx context.Context, gameName, tagLine string) (domain.PlayerIdentity, error) {
	f.record("identity")
	if f.resolveFn == nil {
		return domain.PlayerIdentity{Puuid: "P1", GameName: gameName, TagLine: tagLine}, nil
	}
	return f.resolveFn(ctx, gameName, tagLine)
}

func (f *fakeRiot) FetchSummoner(ctx context.Context, platform, puuid string) (domain.SummonerProfile, error) {
	f.record("summoner")
	if f.summonerFn == nil {
		return domain.SummonerProfile{ID: "S1", Puuid: puuid, Level: 100}, nil
	}
	return f.summonerFn(ctx, platform, puuid)
}

func (f *fakeRiot) FetchRankEntries(ctx context.Context, platform, summonerID string) ([]domain.RankEntry, error) {
	f.record("ranks")
	if f.ranksFn == nil {
		return []domain.RankEntry{}, nil
	}
	return f.ranksFn(ctx, platform, summonerID)
}

func (f *fakeRiot) FetchRecentMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	f.record("ids")
	if f.idsFn == nil {
		return []string{}, nil
	}
	return f.idsFn(ctx, puuid, count)
}

func (f *fakeRiot) FetchMatchDetail(ctx context.Context, matchID, puuid string) (domain.MatchSummary, error) {
	f.record("match")
	return f.matchFn(ctx, matchID, puuid)
}

func (f *fakeRiot) FetchChampionMastery(ctx context.Context, platform, puuid string, count int) ([]domain.ChampionMastery, error) {
	f.record("mastery")
	if f.masteryFn == nil {
		return []domain.ChampionMastery{}, nil
	}
	return f.masteryFn(ctx, platform, puuid, count)
}

func (f *fakeRiot) RateLimitInfo() domain.RateLimitInfo {
	return domain.RateLimitInfo{AppLimit: "20:1"}
}

type fakeLookups struct {
	upserted    []domain.PlayerLookup
	results     []domain.PlayerLookup
	err         error
	getByNameFn func(ctx context.Context, name, tag string) (*domain.PlayerLookup, error)
}

func (f *fakeLookups) Upsert(ctx context.Context, l *domain.PlayerLookup) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, *l)
	return nil
}

func (f *fakeLookups) GetByName(ctx context.Context, name, tag string) (*domain.PlayerLookup, error) {
	if f.getByNameFn != nil {
		return f.getByNameFn(ctx, name, tag)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeLookups) Search(ctx context.Context, query string, limit int) ([]domain.PlayerLookup, error) {
	return f.results, f.err
}

type fakeRankStore struct {
	inserted []domain.RankSnapshot
	err      error
}

func (f *fakeRankStore) InsertBatch(ctx context.Context, s []domain.RankSnapshot) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, s...)
	return nil
}

func (f *fakeRankStore) GetByPuuid(ctx context.Context, puuid string, limit int) ([]domain.RankSnapshot, error) {
	return f.inserted, f.err
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
