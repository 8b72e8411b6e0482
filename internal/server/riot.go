package server

import (
	"net/http"
	"strconv"

	"lol-tracker/internal/assembler"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/service"

	"github.com/go-chi/chi/v5"
)

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	count, err := intParam(r, "count", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h, err := s.history.GetPlayerMatchHistory(r.Context(), service.HistoryRequest{
		GameName: q.Get("gameName"),
		TagLine:  q.Get("tagLine"),
		Count:    count,
		Platform: q.Get("platform"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	message := "match history retrieved"
	if h.Partial() {
		message = "match history retrieved with " + strconv.Itoa(h.FailedCount) + " failed matches"
	}
	ok(w, message, assembler.History(h))
}

func (s *Server) getPlayer(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	detailed, _ := strconv.ParseBool(q.Get("detailed"))

	p, err := s.players.GetProfile(r.Context(), q.Get("gameName"), q.Get("tagLine"), q.Get("platform"), detailed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "player retrieved", assembler.Profile(p))
}

func (s *Server) searchPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.players.SearchSuggestions(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", assembler.Suggestions(players))
}

func (s *Server) getRankHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	snapshots, err := s.players.RankHistory(r.Context(), r.URL.Query().Get("puuid"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", assembler.RankSnapshots(snapshots))
}

func (s *Server) getRankEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := s.matches.RankEntries(r.Context(), q.Get("platform"), q.Get("summonerId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", map[string]any{
		"soloRank": assembler.RankString(entries, domain.QueueSolo),
		"flexRank": assembler.RankString(entries, domain.QueueFlex),
		"ranks":    assembler.Ranks(entries),
	})
}

func (s *Server) getRecentMatches(w http.ResponseWriter, r *http.Request) {
	count, err := intParam(r, "count", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ids, err := s.matches.RecentMatchIDs(r.Context(), r.URL.Query().Get("puuid"), count)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", ids)
}

func (s *Server) getMatch(w http.ResponseWriter, r *http.Request) {
	puuid := r.URL.Query().Get("puuid")
	m, err := s.matches.MatchDetail(r.Context(), chi.URLParam(r, "matchId"), puuid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", assembler.MatchDetail(puuid, domain.PlayerIdentity{}, m))
}

func (s *Server) getMastery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	count, err := intParam(r, "count", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ms, err := s.matches.ChampionMastery(r.Context(), q.Get("platform"), q.Get("puuid"), count)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", assembler.Masteries(ms))
}

func (s *Server) getRateLimit(w http.ResponseWriter, r *http.Request) {
	ok(w, "", s.matches.RateLimit())
}
