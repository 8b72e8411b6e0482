package service

import "lol-tracker/internal/domain"

// Aggregate folds match summaries into totals. It is pure and safe to call
// with a nil slice.
func Aggregate(matches []domain.MatchSummary) domain.AggregateStats {
	if len(matches) == 0 {
		return domain.AggregateStats{MostPlayedChampion: domain.MostPlayedFallback}
	}

	stats := domain.AggregateStats{TotalGames: len(matches)}
	counts := make(map[string]int, len(matches))
	best, bestCount := "", 0

	for _, m := range matches {
		if m.Win {
			stats.Wins++
		}
		stats.TotalKills += m.Kills
		stats.TotalDeaths += m.Deaths
		stats.TotalAssists += m.Assists

		counts[m.ChampionName]++
		// strict > keeps the first champion to reach the max
		if c := counts[m.ChampionName]; c > bestCount {
			best, bestCount = m.ChampionName, c
		}
	}

	games := float64(stats.TotalGames)
	stats.Losses = stats.TotalGames - stats.Wins
	stats.WinRate = float64(stats.Wins) / games * 100
	stats.AverageKDA = KDA(stats.TotalKills, stats.TotalDeaths, stats.TotalAssists)
	stats.AverageKills = float64(stats.TotalKills) / games
	stats.AverageDeaths = float64(stats.TotalDeaths) / games
	stats.AverageAssists = float64(stats.TotalAssists) / games
	stats.MostPlayedChampion = best
	return stats
}

// KDA is (kills+assists)/deaths, or kills+assists when deaths is zero.
func KDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		return float64(kills + assists)
	}
	return float64(kills+assists) / float64(deaths)
}
