package assembler

import (
	"time"

	"lol-tracker/internal/domain"
	"lol-tracker/internal/service"
)

type PlayerView struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type RankView struct {
	QueueType    domain.QueueType `json:"queueType"`
	Tier         string           `json:"tier"`
	Rank         string           `json:"rank"`
	LeaguePoints int              `json:"leaguePoints"`
	Wins         int              `json:"wins"`
	Losses       int              `json:"losses"`
	WinRate      float64          `json:"winRate"`
}

type MatchView struct {
	MatchID             string    `json:"matchId"`
	GameDate            time.Time `json:"gameDate"`
	GameLength          int       `json:"gameLength"`
	FormattedGameLength string    `json:"formattedGameLength"`
	QueueType           string    `json:"queueType"`
	ChampionID          int       `json:"championId"`
	ChampionName        string    `json:"championName"`
	Victory             bool      `json:"victory"`
	Kills               int       `json:"kills"`
	Deaths              int       `json:"deaths"`
	Assists             int       `json:"assists"`
	KDA                 float64   `json:"kda"`
	CS                  int       `json:"cs"`
	CSPerMinute         float64   `json:"csPerMinute"`
	TotalDamage         int       `json:"totalDamage"`
	GoldEarned          int       `json:"goldEarned"`
}

type StatsView struct {
	TotalGames         int     `json:"totalGames"`
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	WinRate            float64 `json:"winRate"`
	WinRateString      string  `json:"winRateString"`
	AverageKDA         float64 `json:"averageKDA"`
	KDAString          string  `json:"kdaString"`
	TotalKills         int     `json:"totalKills"`
	TotalDeaths        int     `json:"totalDeaths"`
	TotalAssists       int     `json:"totalAssists"`
	MostPlayedChampion string  `json:"mostPlayedChampion"`
	PerformanceLevel   string  `json:"performanceLevel"`
}

type HistoryResponse struct {
	Player            PlayerView  `json:"player"`
	PlayerDisplayName string      `json:"playerDisplayName"`
	Platform          string      `json:"platform"`
	SummonerLevel     int         `json:"summonerLevel"`
	SoloRank          string      `json:"soloRank"`
	FlexRank          string      `json:"flexRank"`
	Matches           []MatchView `json:"matches"`
	Stats             StatsView   `json:"stats"`
	Summary           string      `json:"summaryText"`
	Partial           bool        `json:"partial"`
	FailedCount       int         `json:"failedCount"`
	FetchedAt         time.Time   `json:"fetchedAt"`
}

type MasteryView struct {
	ChampionID           int       `json:"championId"`
	ChampionName         string    `json:"championName"`
	ChampionLevel        int       `json:"championLevel"`
	ChampionPoints       int       `json:"championPoints"`
	LastPlayTime         time.Time `json:"lastPlayTime"`
	PointsSinceLastLevel int       `json:"championPointsSinceLastLevel"`
	PointsUntilNextLevel int       `json:"championPointsUntilNextLevel"`
}

type ProfileResponse struct {
	GameName       string        `json:"gameName"`
	TagLine        string        `json:"tagLine"`
	Puuid          string        `json:"puuid"`
	DisplayRiotID  string        `json:"displayRiotId"`
	Platform       string        `json:"platform"`
	SummonerID     string        `json:"summonerId"`
	SummonerLevel  int           `json:"summonerLevel"`
	ProfileIconID  int           `json:"profileIconId"`
	SoloRank       string        `json:"soloRank"`
	FlexRank       string        `json:"flexRank"`
	DetailedRanks  []RankView    `json:"detailedRanks,omitempty"`
	RecentMatchIDs []string      `json:"recentMatchIds,omitempty"`
	TopChampions   []MasteryView `json:"topChampions,omitempty"`
	FetchedAt      time.Time     `json:"fetchedAt"`
}

type MatchDetailResponse struct {
	Puuid             string `json:"puuid"`
	GameName          string `json:"gameName,omitempty"`
	TagLine           string `json:"tagLine,omitempty"`
	PlayerDisplayName string `json:"playerDisplayName,omitempty"`
	MatchView
}

type SuggestionView struct {
	Puuid         string    `json:"puuid"`
	GameName      string    `json:"gameName"`
	TagLine       string    `json:"tagLine"`
	DisplayRiotID string    `json:"displayRiotId"`
	Platform      string    `json:"platform"`
	SummonerLevel int       `json:"summonerLevel"`
	ProfileIconID int       `json:"profileIconId"`
	SoloRank      string    `json:"soloRank"`
	LastFetchAt   time.Time `json:"lastFetchAt"`
}

type RankSnapshotView struct {
	ID           string           `json:"id"`
	QueueType    domain.QueueType `json:"queueType"`
	Tier         string           `json:"tier"`
	Rank         string           `json:"rank"`
	LeaguePoints int              `json:"leaguePoints"`
	Wins         int              `json:"wins"`
	Losses       int              `json:"losses"`
	RecordedAt   time.Time        `json:"recordedAt"`
}

func History(h *domain.MatchHistory) HistoryResponse {
	display := DisplayName(h.Identity.GameName, h.Identity.TagLine)
	matches := make([]MatchView, 0, len(h.Matches))
	for _, m := range h.Matches {
		matches = append(matches, Match(m))
	}
	return HistoryResponse{
		Player:            playerView(h.Identity),
		PlayerDisplayName: display,
		Platform:          h.Platform,
		SummonerLevel:     h.Summoner.Level,
		SoloRank:          RankString(h.Ranks, domain.QueueSolo),
		FlexRank:          RankString(h.Ranks, domain.QueueFlex),
		Matches:           matches,
		Stats:             Stats(h.Stats),
		Summary:           Summary(display, h.Stats),
		Partial:           h.Partial(),
		FailedCount:       h.FailedCount,
		FetchedAt:         h.FetchedAt,
	}
}

func Stats(s domain.AggregateStats) StatsView {
	most := s.MostPlayedChampion
	if most == "" {
		most = domain.MostPlayedFallback
	}
	return StatsView{
		TotalGames:         s.TotalGames,
		Wins:               s.Wins,
		Losses:             s.Losses,
		WinRate:            s.WinRate,
		WinRateString:      WinRateString(s.WinRate),
		AverageKDA:         s.AverageKDA,
		KDAString:          KDAString(s),
		TotalKills:         s.TotalKills,
		TotalDeaths:        s.TotalDeaths,
		TotalAssists:       s.TotalAssists,
		MostPlayedChampion: most,
		PerformanceLevel:   PerformanceLevel(s.WinRate),
	}
}

func Match(m domain.MatchSummary) MatchView {
	return MatchView{
		MatchID:             m.MatchID,
		GameDate:            m.GameCreation,
		GameLength:          m.Duration,
		FormattedGameLength: FormatDuration(m.Duration),
		QueueType:           m.QueueName,
		ChampionID:          m.ChampionID,
		ChampionName:        m.ChampionName,
		Victory:             m.Win,
		Kills:               m.Kills,
		Deaths:              m.Deaths,
		Assists:             m.Assists,
		KDA:                 round2(service.KDA(m.Kills, m.Deaths, m.Assists)),
		CS:                  m.CS,
		CSPerMinute:         CSPerMinute(m.CS, m.Duration),
		TotalDamage:         m.Damage,
		GoldEarned:          m.Gold,
	}
}

// MatchDetail attaches the player's identity when it is known; identity may
// be zero for lookups made by puuid alone.
func MatchDetail(puuid string, identity domain.PlayerIdentity, m domain.MatchSummary) MatchDetailResponse {
	resp := MatchDetailResponse{Puuid: puuid, MatchView: Match(m)}
	if identity.GameName != "" {
		resp.GameName = identity.GameName
		resp.TagLine = identity.TagLine
		resp.PlayerDisplayName = DisplayName(identity.GameName, identity.TagLine)
	}
	return resp
}

func Profile(p *domain.PlayerProfile) ProfileResponse {
	resp := ProfileResponse{
		GameName:       p.Identity.GameName,
		TagLine:        p.Identity.TagLine,
		Puuid:          p.Identity.Puuid,
		DisplayRiotID:  DisplayName(p.Identity.GameName, p.Identity.TagLine),
		Platform:       p.Platform,
		SummonerID:     p.Summoner.ID,
		SummonerLevel:  p.Summoner.Level,
		ProfileIconID:  p.Summoner.ProfileIconID,
		SoloRank:       RankString(p.Ranks, domain.QueueSolo),
		FlexRank:       RankString(p.Ranks, domain.QueueFlex),
		DetailedRanks:  Ranks(p.Ranks),
		RecentMatchIDs: p.RecentMatches,
		TopChampions:   Masteries(p.Masteries),
		FetchedAt:      p.FetchedAt,
	}
	return resp
}

func Ranks(entries []domain.RankEntry) []RankView {
	out := make([]RankView, 0, len(entries))
	for _, e := range entries {
		var winRate float64
		if games := e.Wins + e.Losses; games > 0 {
			winRate = round2(float64(e.Wins) / float64(games) * 100)
		}
		out = append(out, RankView{
			QueueType:    e.QueueType,
			Tier:         e.Tier,
			Rank:         e.Division,
			LeaguePoints: e.LeaguePoints,
			Wins:         e.Wins,
			Losses:       e.Losses,
			WinRate:      winRate,
		})
	}
	return out
}

func Masteries(ms []domain.ChampionMastery) []MasteryView {
	if ms == nil {
		return nil
	}
	out := make([]MasteryView, 0, len(ms))
	for _, m := range ms {
		out = append(out, MasteryView{
			ChampionID:           m.ChampionID,
			ChampionName:         m.ChampionName,
			ChampionLevel:        m.Level,
			ChampionPoints:       m.Points,
			LastPlayTime:         m.LastPlayTime,
			PointsSinceLastLevel: m.PointsSinceLastLevel,
			PointsUntilNextLevel: m.PointsUntilNextLevel,
		})
	}
	return out
}

func Suggestions(players []domain.PlayerLookup) []SuggestionView {
	out := make([]SuggestionView, 0, len(players))
	for _, p := range players {
		out = append(out, SuggestionView{
			Puuid:         p.Puuid,
			GameName:      p.Name,
			TagLine:       p.Tag,
			DisplayRiotID: DisplayName(p.Name, p.Tag),
			Platform:      p.Platform,
			SummonerLevel: p.SummonerLevel,
			ProfileIconID: p.ProfileIconID,
			SoloRank:      p.SoloRank,
			LastFetchAt:   p.LastFetchAt,
		})
	}
	return out
}

func RankSnapshots(snapshots []domain.RankSnapshot) []RankSnapshotView {
	out := make([]RankSnapshotView, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, RankSnapshotView{
			ID:           s.ID,
			QueueType:    s.QueueType,
			Tier:         s.Tier,
			Rank:         s.Division,
			LeaguePoints: s.LeaguePoints,
			Wins:         s.Wins,
			Losses:       s.Losses,
			RecordedAt:   s.RecordedAt,
		})
	}
	return out
}

func playerView(id domain.PlayerIdentity) PlayerView {
	return PlayerView{Puuid: id.Puuid, GameName: id.GameName, TagLine: id.TagLine}
}
