package service

import (
	"math"
	"testing"

	"lol-tracker/internal/domain"
)

func match(champion string, win bool, k, d, a int) domain.MatchSummary {
	return domain.MatchSummary{ChampionName: champion, Win: win, Kills: k, Deaths: d, Assists: a}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		matches   []domain.MatchSummary
		wantGames int
		wantWins  int
		wantRate  float64
		wantKDA   float64
		wantChamp string
		wantAvgK  float64
	}{
		{
			name:      "empty",
			matches:   nil,
			wantChamp: "None",
		},
		{
			name:      "two ahri games",
			matches:   []domain.MatchSummary{match("Ahri", true, 5, 2, 3), match("Ahri", false, 1, 4, 2)},
			wantGames: 2, wantWins: 1, wantRate: 50, wantKDA: 11.0 / 6.0, wantChamp: "Ahri", wantAvgK: 3,
		},
		{
			name:      "deathless uses kills plus assists",
			matches:   []domain.MatchSummary{match("Zed", true, 7, 0, 4)},
			wantGames: 1, wantWins: 1, wantRate: 100, wantKDA: 11, wantChamp: "Zed", wantAvgK: 7,
		},
		{
			name:      "tie goes to first to reach max",
			matches:   []domain.MatchSummary{match("A", false, 0, 1, 0), match("B", false, 0, 1, 0), match("A", false, 0, 1, 0), match("B", false, 0, 1, 0)},
			wantGames: 4, wantWins: 0, wantRate: 0, wantKDA: 0, wantChamp: "A", wantAvgK: 0,
		},
		{
			name:      "later champion overtakes",
			matches:   []domain.MatchSummary{match("A", true, 1, 1, 1), match("B", true, 1, 1, 1), match("B", true, 1, 1, 1)},
			wantGames: 3, wantWins: 3, wantRate: 100, wantKDA: 2, wantChamp: "B", wantAvgK: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.matches)
			if got.TotalGames != tt.wantGames || got.Wins != tt.wantWins {
				t.Errorf("games/wins = %d/%d, want %d/%d", got.TotalGames, got.Wins, tt.wantGames, tt.wantWins)
			}
			if got.Wins+got.Losses != got.TotalGames {
				t.Errorf("wins %d + losses %d != total %d", got.Wins, got.Losses, got.TotalGames)
			}
			if !approx(got.WinRate, tt.wantRate) {
				t.Errorf("WinRate = %v, want %v", got.WinRate, tt.wantRate)
			}
			if !approx(got.AverageKDA, tt.wantKDA) {
				t.Errorf("AverageKDA = %v, want %v", got.AverageKDA, tt.wantKDA)
			}
			if !approx(got.AverageKills, tt.wantAvgK) {
				t.Errorf("AverageKills = %v, want %v", got.AverageKills, tt.wantAvgK)
			}
			if got.MostPlayedChampion != tt.wantChamp {
				t.Errorf("MostPlayedChampion = %q, want %q", got.MostPlayedChampion, tt.wantChamp)
			}
		})
	}
}

func TestAggregateOrderIndependentTotals(t *testing.T) {
	a := []domain.MatchSummary{match("X", true, 3, 1, 2), match("Y", false, 0, 5, 1), match("Z", true, 9, 2, 8)}
	b := []domain.MatchSummary{a[2], a[0], a[1]}

	sa, sb := Aggregate(a), Aggregate(b)
	if sa.TotalGames != sb.TotalGames || sa.Wins != sb.Wins || !approx(sa.WinRate, sb.WinRate) || !approx(sa.AverageKDA, sb.AverageKDA) {
		t.Errorf("aggregate depends on order: %+v vs %+v", sa, sb)
	}
}
