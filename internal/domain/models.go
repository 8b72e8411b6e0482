package domain

import (
	"time"
)

type QueueType string

const (
	QueueSolo  QueueType = "solo"
	QueueFlex  QueueType = "flex"
	QueueOther QueueType = "other"
)

const (
	TierUnranked       = "UNRANKED"
	MostPlayedFallback = "None"
)

type PlayerIdentity struct {
	Puuid    string
	GameName string
	TagLine  string
}

type SummonerProfile struct {
	ID            string
	AccountID     string
	Puuid         string
	Name          string
	Level         int
	ProfileIconID int
	RevisionDate  time.Time
}

type RankEntry struct {
	QueueType    QueueType
	Tier         string
	Division     string
	LeaguePoints int
	Wins         int
	Losses       int
}

func (r RankEntry) Unranked() bool {
	return r.Tier == "" || r.Tier == TierUnranked
}

type MatchSummary struct {
	MatchID      string
	GameCreation time.Time
	Duration     int // seconds
	QueueID      int
	QueueName    string
	ChampionID   int
	ChampionName string
	Win          bool
	Kills        int
	Deaths       int
	Assists      int
	CS           int
	Damage       int
	Gold         int
}

type AggregateStats struct {
	TotalGames         int
	Wins               int
	Losses             int
	WinRate            float64 // percent, 0..100
	AverageKDA         float64
	AverageKills       float64
	AverageDeaths      float64
	AverageAssists     float64
	TotalKills         int
	TotalDeaths        int
	TotalAssists       int
	MostPlayedChampion string
}

type ChampionMastery struct {
	ChampionID           int
	ChampionName         string
	Level                int
	Points               int
	LastPlayTime         time.Time
	PointsSinceLastLevel int
	PointsUntilNextLevel int
}

type MatchHistory struct {
	Identity    PlayerIdentity
	Summoner    SummonerProfile
	Platform    string
	Ranks       []RankEntry
	Matches     []MatchSummary
	Stats       AggregateStats
	FailedCount int
	FetchedAt   time.Time
}

func (h *MatchHistory) Partial() bool {
	return h.FailedCount > 0
}

type PlayerProfile struct {
	Identity      PlayerIdentity
	Summoner      SummonerProfile
	Platform      string
	Ranks         []RankEntry
	Masteries     []ChampionMastery
	RecentMatches []string
	FetchedAt     time.Time
}

type PlayerLookup struct {
	Puuid         string
	Name          string
	Tag           string
	Platform      string
	SummonerLevel int
	ProfileIconID int
	SoloRank      string
	LastFetchAt   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type RankSnapshot struct {
	ID           string // nanoid
	Puuid        string
	QueueType    QueueType
	Tier         string
	Division     string
	LeaguePoints int
	Wins         int
	Losses       int
	RecordedAt   time.Time
}

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserStats struct {
	TotalUsers       int
	AdminUsers       int
	RegularUsers     int
	RecentSignups    int
	LatestSignupDate *time.Time
}

type Board struct {
	ID         int64
	Title      string
	Content    string
	AuthorID   int64
	AuthorName string
	ViewCount  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type BoardPage struct {
	Items      []Board
	Page       int
	Size       int
	Total      int
	TotalPages int
}

type AuthorStats struct {
	Author     string
	PostCount  int
	TotalViews int
	LatestPost *time.Time
}

// RateLimitInfo is the last rate-limit state reported by the upstream.
type RateLimitInfo struct {
	AppLimit    string    `json:"app_limit"`
	AppCount    string    `json:"app_count"`
	MethodLimit string    `json:"method_limit"`
	MethodCount string    `json:"method_count"`
	RetryAfter  int       `json:"retry_after"` // seconds
	UpdatedAt   time.Time `json:"updated_at"`
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID   int64
	Username string
	Role     Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
