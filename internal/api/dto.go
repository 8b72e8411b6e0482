package api

import (
	"time"

	"lol-tracker/internal/domain"
	"lol-tracker/internal/lookup"
)

type accountDTO struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type summonerDTO struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	Puuid         string `json:"puuid"`
	Name          string `json:"name"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int64  `json:"summonerLevel"`
}

func (s summonerDTO) toDomain() domain.SummonerProfile {
	p := domain.SummonerProfile{
		ID:            s.ID,
		AccountID:     s.AccountID,
		Puuid:         s.Puuid,
		Name:          s.Name,
		Level:         int(s.SummonerLevel),
		ProfileIconID: s.ProfileIconID,
	}
	if s.RevisionDate > 0 {
		p.RevisionDate = time.UnixMilli(s.RevisionDate).UTC()
	}
	return p
}

type leagueEntryDTO struct {
	QueueType    string  `json:"queueType"`
	Tier         *string `json:"tier"`
	Rank         *string `json:"rank"`
	LeaguePoints int     `json:"leaguePoints"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
}

func (e leagueEntryDTO) toDomain() domain.RankEntry {
	entry := domain.RankEntry{
		QueueType:    queueTypeFor(e.QueueType),
		LeaguePoints: e.LeaguePoints,
		Wins:         e.Wins,
		Losses:       e.Losses,
	}
	if e.Tier == nil || *e.Tier == "" {
		entry.Tier = domain.TierUnranked
		return entry
	}
	entry.Tier = *e.Tier
	if e.Rank != nil {
		entry.Division = *e.Rank
	}
	return entry
}

func queueTypeFor(raw string) domain.QueueType {
	switch raw {
	case "RANKED_SOLO_5x5":
		return domain.QueueSolo
	case "RANKED_FLEX_SR":
		return domain.QueueFlex
	default:
		return domain.QueueOther
	}
}

type matchDTO struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info *matchInfoDTO `json:"info"`
}

type matchInfoDTO struct {
	GameCreation int64            `json:"gameCreation"`
	GameDuration int              `json:"gameDuration"`
	QueueID      int              `json:"queueId"`
	Participants []participantDTO `json:"participants"`
}

type participantDTO struct {
	Puuid                       string `json:"puuid"`
	ChampionID                  int    `json:"championId"`
	Win                         bool   `json:"win"`
	Kills                       int    `json:"kills"`
	Deaths                      int    `json:"deaths"`
	Assists                     int    `json:"assists"`
	TotalMinionsKilled          int    `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int    `json:"neutralMinionsKilled"`
	TotalDamageDealtToChampions int    `json:"totalDamageDealtToChampions"`
	GoldEarned                  int    `json:"goldEarned"`
}

func (m matchDTO) summaryFor(matchID, puuid string, champions, queues lookup.Names) (domain.MatchSummary, error) {
	if m.Info == nil {
		return domain.MatchSummary{}, &domain.UpstreamError{Kind: domain.ErrUpstream, Endpoint: endpointMatch}
	}
	for _, p := range m.Info.Participants {
		if p.Puuid != puuid {
			continue
		}
		return domain.MatchSummary{
			MatchID:      matchID,
			GameCreation: time.UnixMilli(m.Info.GameCreation).UTC(),
			Duration:     m.Info.GameDuration,
			QueueID:      m.Info.QueueID,
			QueueName:    queues.NameFor(m.Info.QueueID),
			ChampionID:   p.ChampionID,
			ChampionName: champions.NameFor(p.ChampionID),
			Win:          p.Win,
			Kills:        p.Kills,
			Deaths:       p.Deaths,
			Assists:      p.Assists,
			CS:           p.TotalMinionsKilled + p.NeutralMinionsKilled,
			Damage:       p.TotalDamageDealtToChampions,
			Gold:         p.GoldEarned,
		}, nil
	}
	// participant missing from a match listed for them
	return domain.MatchSummary{}, &domain.UpstreamError{Kind: domain.ErrNotFound, Endpoint: endpointMatch}
}

type masteryDTO struct {
	ChampionID                   int   `json:"championId"`
	ChampionLevel                int   `json:"championLevel"`
	ChampionPoints               int   `json:"championPoints"`
	LastPlayTime                 int64 `json:"lastPlayTime"`
	ChampionPointsSinceLastLevel int   `json:"championPointsSinceLastLevel"`
	ChampionPointsUntilNextLevel int   `json:"championPointsUntilNextLevel"`
}

func (m masteryDTO) toDomain(champions lookup.Names) domain.ChampionMastery {
	cm := domain.ChampionMastery{
		ChampionID:           m.ChampionID,
		ChampionName:         champions.NameFor(m.ChampionID),
		Level:                m.ChampionLevel,
		Points:               m.ChampionPoints,
		PointsSinceLastLevel: m.ChampionPointsSinceLastLevel,
		PointsUntilNextLevel: m.ChampionPointsUntilNextLevel,
	}
	if m.LastPlayTime > 0 {
		cm.LastPlayTime = time.UnixMilli(m.LastPlayTime).UTC()
	}
	return cm
}
