package server

import (
	"context"
	"net/http"
	"time"

	"lol-tracker/internal/auth"
	"lol-tracker/internal/config"
	"lol-tracker/internal/middleware"
	"lol-tracker/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	history *service.MatchHistoryService
	players *service.PlayerService
	matches *service.MatchService
	users   *service.UserService
	boards  *service.BoardService
	tokens  *auth.TokenIssuer
	db      Pinger
	cfg     *config.Config
	logger  zerolog.Logger
	started time.Time
}

func NewServer(
	history *service.MatchHistoryService,
	players *service.PlayerService,
	matches *service.MatchService,
	users *service.UserService,
	boards *service.BoardService,
	tokens *auth.TokenIssuer,
	db Pinger,
	cfg *config.Config,
	logger zerolog.Logger,
) *Server {
	return &Server{
		history: history,
		players: players,
		matches: matches,
		users:   users,
		boards:  boards,
		tokens:  tokens,
		db:      db,
		cfg:     cfg,
		logger:  logger,
		started: time.Now(),
	}
}

// Handler builds the full HTTP surface: API routes, metrics and CORS.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Authenticate(s.tokens))

	requireAuth := middleware.RequireAuth(unauthorized)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Get("/health/detailed", s.healthDetailed)

		r.Route("/riot", func(r chi.Router) {
			r.Get("/history", s.getHistory)
			r.Get("/player", s.getPlayer)
			r.Get("/search", s.searchPlayers)
			r.Get("/rank/history", s.getRankHistory)
			r.Get("/rank", s.getRankEntries)
			r.Get("/matches/recent", s.getRecentMatches)
			r.Get("/match/{matchId}", s.getMatch)
			r.Get("/mastery", s.getMastery)
			r.Get("/ratelimit", s.getRateLimit)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.signup)
			r.Post("/login", s.login)
			r.Post("/logout", s.logout)
			r.Get("/check/username/{username}", s.checkUsername)
			r.Get("/check/email/{email}", s.checkEmail)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/stats", s.userStats)
			r.Get("/username/{username}", s.getUserByUsername)
			r.Get("/{userId}", s.getUser)
			r.With(requireAuth).Delete("/{userId}", s.deleteUser)
		})

		r.Route("/boards", func(r chi.Router) {
			r.Get("/", s.listBoards)
			r.Get("/search", s.searchBoards)
			r.Get("/recent", s.recentBoards)
			r.Get("/popular", s.popularBoards)
			r.Get("/count", s.countBoards)
			r.Get("/author/{author}", s.boardsByAuthor)
			r.Get("/stats/author/{author}", s.authorStats)
			r.Get("/{boardId}", s.getBoard)
			r.Get("/{boardId}/exists", s.boardExists)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", s.createBoard)
				r.Put("/{boardId}", s.updateBoard)
				r.Delete("/{boardId}", s.deleteBoard)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
	})
	return c.Handler(r)
}
