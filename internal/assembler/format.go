package assembler

import (
	"fmt"
	"math"

	"lol-tracker/internal/domain"
)

func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d분 %d초", seconds/60, seconds%60)
}

func DisplayName(gameName, tagLine string) string {
	return gameName + "#" + tagLine
}

// RankString renders the entry for queue as "TIER DIV (NLP)", or UNRANKED
// when the player has no placed entry for it.
func RankString(entries []domain.RankEntry, queue domain.QueueType) string {
	for _, e := range entries {
		if e.QueueType != queue {
			continue
		}
		if e.Unranked() {
			return domain.TierUnranked
		}
		return fmt.Sprintf("%s %s (%dLP)", e.Tier, e.Division, e.LeaguePoints)
	}
	return domain.TierUnranked
}

func WinRateString(winRate float64) string {
	return fmt.Sprintf("%.1f%%", winRate)
}

// KDAString renders per-game average kills/deaths/assists.
func KDAString(s domain.AggregateStats) string {
	if s.TotalGames == 0 {
		return "0.0"
	}
	n := float64(s.TotalGames)
	return fmt.Sprintf("%.1f/%.1f/%.1f", float64(s.TotalKills)/n, float64(s.TotalDeaths)/n, float64(s.TotalAssists)/n)
}

func PerformanceLevel(winRate float64) string {
	switch {
	case winRate >= 70:
		return "매우 좋음"
	case winRate >= 60:
		return "좋음"
	case winRate >= 50:
		return "보통"
	case winRate >= 40:
		return "아쉬움"
	default:
		return "분발 필요"
	}
}

func Summary(displayName string, s domain.AggregateStats) string {
	champion := s.MostPlayedChampion
	if champion == "" {
		champion = domain.MostPlayedFallback
	}
	return fmt.Sprintf("%s님의 최근 %d경기: %d승 %d패 (승률 %s), 주력 챔피언: %s",
		displayName, s.TotalGames, s.Wins, s.Losses, WinRateString(s.WinRate), champion)
}

func CSPerMinute(cs, durationSeconds int) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return round2(float64(cs) / (float64(durationSeconds) / 60))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
