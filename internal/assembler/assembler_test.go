package assembler

import (
	"strings"
	"testing"

	"lol-tracker/internal/domain"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0분 0초"},
		{59, "0분 59초"},
		{1825, "30분 25초"},
		{-3, "0분 0초"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestRankString(t *testing.T) {
	entries := []domain.RankEntry{
		{QueueType: domain.QueueSolo, Tier: "GOLD", Division: "II", LeaguePoints: 45},
		{QueueType: domain.QueueFlex, Tier: domain.TierUnranked},
	}
	tests := []struct {
		name    string
		entries []domain.RankEntry
		queue   domain.QueueType
		want    string
	}{
		{"ranked solo", entries, domain.QueueSolo, "GOLD II (45LP)"},
		{"unranked flex", entries, domain.QueueFlex, "UNRANKED"},
		{"absent queue", entries[:1], domain.QueueFlex, "UNRANKED"},
		{"no entries", nil, domain.QueueSolo, "UNRANKED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RankString(tt.entries, tt.queue); got != tt.want {
				t.Errorf("RankString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPerformanceLevel(t *testing.T) {
	tests := []struct {
		winRate float64
		want    string
	}{
		{100, "매우 좋음"},
		{70, "매우 좋음"},
		{69.9, "좋음"},
		{60, "좋음"},
		{50, "보통"},
		{40, "아쉬움"},
		{39.9, "분발 필요"},
		{0, "분발 필요"},
	}
	for _, tt := range tests {
		if got := PerformanceLevel(tt.winRate); got != tt.want {
			t.Errorf("PerformanceLevel(%v) = %q, want %q", tt.winRate, got, tt.want)
		}
	}
}

func TestKDAString(t *testing.T) {
	if got := KDAString(domain.AggregateStats{}); got != "0.0" {
		t.Errorf("empty KDAString = %q", got)
	}
	s := domain.AggregateStats{TotalGames: 2, TotalKills: 6, TotalDeaths: 6, TotalAssists: 5}
	if got := KDAString(s); got != "3.0/3.0/2.5" {
		t.Errorf("KDAString = %q", got)
	}
}

func TestSummary(t *testing.T) {
	s := domain.AggregateStats{TotalGames: 2, Wins: 1, Losses: 1, WinRate: 50, MostPlayedChampion: "Ahri"}
	want := "Faker#KR1님의 최근 2경기: 1승 1패 (승률 50.0%), 주력 챔피언: Ahri"
	if got := Summary("Faker#KR1", s); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
	if got := Summary("x#y", domain.AggregateStats{}); !strings.HasSuffix(got, "주력 챔피언: None") {
		t.Errorf("empty Summary() = %q", got)
	}
}

func TestCSPerMinute(t *testing.T) {
	if got := CSPerMinute(180, 1200); got != 9 {
		t.Errorf("CSPerMinute = %v, want 9", got)
	}
	if got := CSPerMinute(180, 0); got != 0 {
		t.Errorf("zero duration CSPerMinute = %v", got)
	}
}

func TestHistory(t *testing.T) {
	h := &domain.MatchHistory{
		Identity: domain.PlayerIdentity{Puuid: "P1", GameName: "Faker", TagLine: "KR1"},
		Platform: "kr",
		Ranks:    []domain.RankEntry{{QueueType: domain.QueueSolo, Tier: "CHALLENGER", Division: "I", LeaguePoints: 1200}},
		Matches: []domain.MatchSummary{
			{MatchID: "M1", Duration: 1800, ChampionName: "Ahri", Win: true, Kills: 5, Deaths: 2, Assists: 3, CS: 240},
			{MatchID: "M2", Duration: 1500, ChampionName: "Ahri", Kills: 1, Deaths: 4, Assists: 2},
		},
		Stats: domain.AggregateStats{
			TotalGames: 2, Wins: 1, Losses: 1, WinRate: 50, AverageKDA: 11.0 / 6,
			TotalKills: 6, TotalDeaths: 6, TotalAssists: 5, MostPlayedChampion: "Ahri",
		},
		FailedCount: 1,
	}

	resp := History(h)
	if resp.PlayerDisplayName != "Faker#KR1" || resp.SoloRank != "CHALLENGER I (1200LP)" || resp.FlexRank != "UNRANKED" {
		t.Errorf("header = %+v", resp)
	}
	if len(resp.Matches) != 2 || resp.Matches[0].MatchID != "M1" || resp.Matches[0].FormattedGameLength != "30분 0초" {
		t.Fatalf("matches = %+v", resp.Matches)
	}
	if resp.Matches[0].KDA != 4 || resp.Matches[0].CSPerMinute != 8 {
		t.Errorf("per-match stats = %+v", resp.Matches[0])
	}
	if !resp.Partial || resp.FailedCount != 1 {
		t.Error("partial flag not carried")
	}
	if resp.Stats.PerformanceLevel != "보통" || resp.Stats.WinRateString != "50.0%" {
		t.Errorf("stats = %+v", resp.Stats)
	}
}

func TestProfileAndMatchDetail(t *testing.T) {
	p := &domain.PlayerProfile{
		Identity: domain.PlayerIdentity{Puuid: "P1", GameName: "Faker", TagLine: "KR1"},
		Summoner: domain.SummonerProfile{ID: "S1", Level: 500},
		Ranks:    []domain.RankEntry{{QueueType: domain.QueueFlex, Tier: "GOLD", Division: "IV", Wins: 3, Losses: 1}},
	}
	resp := Profile(p)
	if resp.DisplayRiotID != "Faker#KR1" || resp.SoloRank != "UNRANKED" || resp.FlexRank != "GOLD IV (0LP)" {
		t.Errorf("profile = %+v", resp)
	}
	if len(resp.DetailedRanks) != 1 || resp.DetailedRanks[0].WinRate != 75 {
		t.Errorf("ranks = %+v", resp.DetailedRanks)
	}
	if resp.TopChampions != nil {
		t.Error("basic profile should omit mastery")
	}

	d := MatchDetail("P1", domain.PlayerIdentity{}, domain.MatchSummary{MatchID: "M1"})
	if d.PlayerDisplayName != "" || d.MatchID != "M1" {
		t.Errorf("detail = %+v", d)
	}
}
