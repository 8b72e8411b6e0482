package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"

	"github.com/rs/zerolog"
)

func newPlayerService(riot RiotAPI, lookups *fakeLookups, ranks *fakeRankStore) *PlayerService {
	s := NewPlayerService(riot, lookups, ranks, HistoryOptions{DefaultPlatform: "kr", RequestTimeout: time.Second}, zerolog.Nop())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestGetProfileRecordsLookupAndRanks(t *testing.T) {
	riot := &fakeRiot{
		ranksFn: func(ctx context.Context, platform, summonerID string) ([]domain.RankEntry, error) {
			return []domain.RankEntry{
				{QueueType: domain.QueueSolo, Tier: "GOLD", Division: "II", LeaguePoints: 40},
				{QueueType: domain.QueueFlex, Tier: domain.TierUnranked},
			}, nil
		},
		masteryFn: func(ctx context.Context, platform, puuid string, count int) ([]domain.ChampionMastery, error) {
			return []domain.ChampionMastery{{ChampionID: 103, ChampionName: "Ahri"}}, nil
		},
		idsFn: func(ctx context.Context, puuid string, count int) ([]string, error) {
			return []string{"M1"}, nil
		},
	}
	lookups, ranks := &fakeLookups{}, &fakeRankStore{}
	s := newPlayerService(riot, lookups, ranks)

	p, err := s.GetProfile(context.Background(), "Faker", "KR1", "", true)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if p.Platform != "kr" || len(p.Masteries) != 1 || len(p.RecentMatches) != 1 || len(p.Ranks) != 2 {
		t.Errorf("profile = %+v", p)
	}
	if len(lookups.upserted) != 1 || lookups.upserted[0].SoloRank != "GOLD II" {
		t.Errorf("lookup = %+v", lookups.upserted)
	}
	if len(ranks.inserted) != 1 || ranks.inserted[0].Tier != "GOLD" {
		t.Errorf("unranked entries must not be snapshotted: %+v", ranks.inserted)
	}
}

func TestGetProfileBestEffortExtras(t *testing.T) {
	boom := &domain.UpstreamError{Kind: domain.ErrUpstream, Endpoint: "x", Status: 500}
	riot := &fakeRiot{
		ranksFn: func(ctx context.Context, platform, summonerID string) ([]domain.RankEntry, error) {
			return nil, boom
		},
		masteryFn: func(ctx context.Context, platform, puuid string, count int) ([]domain.ChampionMastery, error) {
			return nil, boom
		},
	}
	lookups := &fakeLookups{err: errors.New("disk full")}
	s := newPlayerService(riot, lookups, &fakeRankStore{})

	p, err := s.GetProfile(context.Background(), "Faker", "KR1", "na", true)
	if err != nil {
		t.Fatalf("extras and persistence failures must not fail the profile: %v", err)
	}
	if p.Ranks == nil || len(p.Ranks) != 0 || p.Platform != "na" {
		t.Errorf("profile = %+v", p)
	}
	if riot.count("ids") != 1 {
		t.Errorf("detailed profile should list recent matches")
	}
}

func TestGetProfileBasicSkipsExtras(t *testing.T) {
	riot := &fakeRiot{}
	s := newPlayerService(riot, &fakeLookups{}, &fakeRankStore{})
	if _, err := s.GetProfile(context.Background(), "Faker", "KR1", "", false); err != nil {
		t.Fatal(err)
	}
	if riot.count("mastery") != 0 || riot.count("ids") != 0 {
		t.Error("basic profile must not fetch mastery or matches")
	}
}

func TestGetProfileIdentityError(t *testing.T) {
	riot := &fakeRiot{
		resolveFn: func(ctx context.Context, gameName, tagLine string) (domain.PlayerIdentity, error) {
			return domain.PlayerIdentity{}, &domain.UpstreamError{Kind: domain.ErrNotFound, Endpoint: "account", Status: 404}
		},
	}
	lookups := &fakeLookups{}
	s := newPlayerService(riot, lookups, &fakeRankStore{})
	if _, err := s.GetProfile(context.Background(), "x", "y", "", false); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v", err)
	}
	if len(lookups.upserted) != 0 {
		t.Error("nothing should be recorded for an unknown player")
	}
}

func TestSearchSuggestions(t *testing.T) {
	lookups := &fakeLookups{results: []domain.PlayerLookup{{Puuid: "P1", Name: "Faker"}}}
	s := newPlayerService(&fakeRiot{}, lookups, &fakeRankStore{})

	got, err := s.SearchSuggestions(context.Background(), "  ")
	if err != nil || len(got) != 0 {
		t.Errorf("blank query = %v, %v", got, err)
	}
	got, err = s.SearchSuggestions(context.Background(), "fak")
	if err != nil || len(got) != 1 {
		t.Errorf("search = %v, %v", got, err)
	}
}

func TestSearchSuggestionsExactRiotIDFirst(t *testing.T) {
	faker := domain.PlayerLookup{Puuid: "P1", Name: "Faker", Tag: "KR1"}
	fakerFan := domain.PlayerLookup{Puuid: "P2", Name: "Faker fan", Tag: "KR1"}
	dbErr := errors.New("database is locked")

	many := make([]domain.PlayerLookup, 0, constants.SearchSuggestionLimit)
	for i := 0; i < constants.SearchSuggestionLimit; i++ {
		many = append(many, domain.PlayerLookup{Puuid: fmt.Sprintf("X%d", i), Name: "Faker", Tag: "KR1x"})
	}

	tests := []struct {
		name      string
		query     string
		results   []domain.PlayerLookup
		exact     *domain.PlayerLookup
		exactErr  error
		wantPuuid []string
		wantErr   error
		wantName  string
		wantTag   string
	}{
		{
			name: "no tag skips exact lookup", query: "faker",
			results: []domain.PlayerLookup{fakerFan, faker}, exact: &faker,
			wantPuuid: []string{"P2", "P1"},
		},
		{
			name: "exact match moved to front", query: " faker # kr1 ",
			results: []domain.PlayerLookup{fakerFan, faker}, exact: &faker,
			wantPuuid: []string{"P1", "P2"}, wantName: "faker", wantTag: "kr1",
		},
		{
			name: "exact match missing from fuzzy results", query: "faker#kr1",
			results: []domain.PlayerLookup{fakerFan}, exact: &faker,
			wantPuuid: []string{"P1", "P2"}, wantName: "faker", wantTag: "kr1",
		},
		{
			name: "no exact match", query: "faker#kr1",
			results: []domain.PlayerLookup{fakerFan}, exactErr: domain.ErrNotFound,
			wantPuuid: []string{"P2"},
		},
		{
			name: "empty tag skips exact lookup", query: "faker#",
			results: []domain.PlayerLookup{fakerFan}, exact: &faker,
			wantPuuid: []string{"P2"},
		},
		{
			name: "limit kept", query: "faker#kr1",
			results: many, exact: &faker,
			wantPuuid: []string{"P1", "X0", "X1", "X2", "X3", "X4", "X5", "X6", "X7", "X8"},
		},
		{
			name: "lookup failure", query: "faker#kr1",
			results: []domain.PlayerLookup{fakerFan}, exactErr: dbErr,
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotName, gotTag string
			lookups := &fakeLookups{
				results: tt.results,
				getByNameFn: func(ctx context.Context, name, tag string) (*domain.PlayerLookup, error) {
					gotName, gotTag = name, tag
					if tt.exactErr != nil {
						return nil, tt.exactErr
					}
					return tt.exact, nil
				},
			}
			s := newPlayerService(&fakeRiot{}, lookups, &fakeRankStore{})

			got, err := s.SearchSuggestions(context.Background(), tt.query)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SearchSuggestions() error = %v", err)
			}
			puuids := make([]string, 0, len(got))
			for _, p := range got {
				puuids = append(puuids, p.Puuid)
			}
			if strings.Join(puuids, ",") != strings.Join(tt.wantPuuid, ",") {
				t.Errorf("suggestions = %v, want %v", puuids, tt.wantPuuid)
			}
			if tt.wantName != "" && (gotName != tt.wantName || gotTag != tt.wantTag) {
				t.Errorf("exact lookup = %q#%q, want %q#%q", gotName, gotTag, tt.wantName, tt.wantTag)
			}
		})
	}
}

func TestRankHistoryRequiresPuuid(t *testing.T) {
	s := newPlayerService(&fakeRiot{}, &fakeLookups{}, &fakeRankStore{})
	var verr *domain.ValidationError
	if _, err := s.RankHistory(context.Background(), "", 10); !errors.As(err, &verr) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestMatchServicePassThrough(t *testing.T) {
	riot := &fakeRiot{
		matchFn: func(ctx context.Context, matchID, puuid string) (domain.MatchSummary, error) {
			if matchID == "KR_404" {
				return domain.MatchSummary{}, &domain.UpstreamError{Kind: domain.ErrNotFound, Endpoint: "match", Status: 404}
			}
			return domain.MatchSummary{MatchID: matchID}, nil
		},
	}
	s := NewMatchService(riot, HistoryOptions{DefaultPlatform: "kr"}, zerolog.Nop())
	ctx := context.Background()

	if m, err := s.MatchDetail(ctx, "KR_1", "P1"); err != nil || m.MatchID != "KR_1" {
		t.Errorf("MatchDetail = %+v, %v", m, err)
	}
	if _, err := s.MatchDetail(ctx, "KR_404", "P1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v", err)
	}
	var verr *domain.ValidationError
	if _, err := s.MatchDetail(ctx, "KR_1", ""); !errors.As(err, &verr) {
		t.Errorf("missing puuid error = %v", err)
	}
	if s.RateLimit().AppLimit != "20:1" {
		t.Error("rate limit info not forwarded")
	}
}
