package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/lookup"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const (
	endpointAccount  = "account"
	endpointSummoner = "summoner"
	endpointLeague   = "league"
	endpointMatchIDs = "match_ids"
	endpointMatch    = "match"
	endpointMastery  = "mastery"
)

type Options struct {
	APIKey        string
	RegionalRoute string
	// HostFormat receives the route, e.g. "https://%s.api.riotgames.com".
	HostFormat string
	Timeout    time.Duration
	Dial       fasthttp.DialFunc
}

type RiotClient struct {
	apiKey        string
	regionalRoute string
	hostFormat    string
	timeout       time.Duration
	client        *fasthttp.Client
	champions     lookup.Names
	queues        lookup.Names
	logger        zerolog.Logger

	rateLimitMu sync.RWMutex
	rateLimit   domain.RateLimitInfo
}

func NewRiotClient(opts Options, tables lookup.Tables, logger zerolog.Logger) *RiotClient {
	if opts.HostFormat == "" {
		opts.HostFormat = "https://%s.api.riotgames.com"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &RiotClient{
		apiKey:        opts.APIKey,
		regionalRoute: opts.RegionalRoute,
		hostFormat:    opts.HostFormat,
		timeout:       opts.Timeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:        100,
			ReadTimeout:            opts.Timeout,
			WriteTimeout:           opts.Timeout,
			MaxIdleConnDuration:    1 * time.Minute,
			DisablePathNormalizing: true,
			Dial:                   opts.Dial,
		},
		champions: tables.Champions,
		queues:    tables.Queues,
		logger:    logger.With().Str("component", "riot_client").Logger(),
	}
}

func NewRiotClientFromConfig(cfg *config.Config, tables lookup.Tables, logger zerolog.Logger) *RiotClient {
	return NewRiotClient(Options{
		APIKey:        cfg.RiotAPIKey,
		RegionalRoute: cfg.RegionalRoute,
		HostFormat:    cfg.RiotHostFormat,
		Timeout:       cfg.UpstreamTimeout,
	}, tables, logger)
}

func (c *RiotClient) RateLimitInfo() domain.RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *RiotClient) updateRateLimit(resp *fasthttp.Response) {
	appLimit := string(resp.Header.Peek("X-App-Rate-Limit"))
	appCount := string(resp.Header.Peek("X-App-Rate-Limit-Count"))
	methodLimit := string(resp.Header.Peek("X-Method-Rate-Limit"))
	methodCount := string(resp.Header.Peek("X-Method-Rate-Limit-Count"))
	retryAfter := string(resp.Header.Peek("Retry-After"))

	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if appLimit != "" {
		c.rateLimit.AppLimit = appLimit
	}
	if appCount != "" {
		c.rateLimit.AppCount = appCount
	}
	if methodLimit != "" {
		c.rateLimit.MethodLimit = methodLimit
	}
	if methodCount != "" {
		c.rateLimit.MethodCount = methodCount
	}
	c.rateLimit.RetryAfter = 0
	if retryAfter != "" {
		if val, err := strconv.Atoi(retryAfter); err == nil {
			c.rateLimit.RetryAfter = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

func (c *RiotClient) regionalURL(path string) string {
	return fmt.Sprintf(c.hostFormat, c.regionalRoute) + path
}

func (c *RiotClient) platformURL(platform, path string) string {
	return fmt.Sprintf(c.hostFormat, PlatformRoute(platform)) + path
}

func (c *RiotClient) ResolveIdentity(ctx context.Context, gameName, tagLine string) (domain.PlayerIdentity, error) {
	u := c.regionalURL(fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s",
		pathSegment(gameName), pathSegment(tagLine)))

	acc, err := doRequest[accountDTO](ctx, c, endpointAccount, u)
	if err != nil {
		return domain.PlayerIdentity{}, err
	}
	if acc.Puuid == "" {
		return domain.PlayerIdentity{}, &domain.UpstreamError{Kind: domain.ErrUpstream, Endpoint: endpointAccount}
	}
	return domain.PlayerIdentity{
		Puuid:    acc.Puuid,
		GameName: acc.GameName,
		TagLine:  acc.TagLine,
	}, nil
}

func (c *RiotClient) FetchSummoner(ctx context.Context, platform, puuid string) (domain.SummonerProfile, error) {
	u := c.platformURL(platform, "/lol/summoner/v4/summoners/by-puuid/"+pathSegment(puuid))

	s, err := doRequest[summonerDTO](ctx, c, endpointSummoner, u)
	if err != nil {
		return domain.SummonerProfile{}, err
	}
	return s.toDomain(), nil
}

func (c *RiotClient) FetchRankEntries(ctx context.Context, platform, summonerID string) ([]domain.RankEntry, error) {
	u := c.platformURL(platform, "/lol/league/v4/entries/by-summoner/"+pathSegment(summonerID))

	entries, err := doRequest[[]leagueEntryDTO](ctx, c, endpointLeague, u)
	if err != nil {
		return nil, err
	}
	result := make([]domain.RankEntry, 0, len(*entries))
	for _, e := range *entries {
		result = append(result, e.toDomain())
	}
	return result, nil
}

func (c *RiotClient) FetchRecentMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	count = clamp(count, 1, constants.MaxMatchIDCount)
	u := c.regionalURL(fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids?start=0&count=%d",
		pathSegment(puuid), count))

	ids, err := doRequest[[]string](ctx, c, endpointMatchIDs, u)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

func (c *RiotClient) FetchMatchDetail(ctx context.Context, matchID, targetPUUID string) (domain.MatchSummary, error) {
	u := c.regionalURL("/lol/match/v5/matches/" + pathSegment(matchID))

	m, err := doRequest[matchDTO](ctx, c, endpointMatch, u)
	if err != nil {
		return domain.MatchSummary{}, err
	}
	return m.summaryFor(matchID, targetPUUID, c.champions, c.queues)
}

func (c *RiotClient) FetchChampionMastery(ctx context.Context, platform, puuid string, count int) ([]domain.ChampionMastery, error) {
	count = clamp(count, 1, constants.MaxMasteryCount)
	u := c.platformURL(platform, fmt.Sprintf("/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/top?count=%d",
		pathSegment(puuid), count))

	masteries, err := doRequest[[]masteryDTO](ctx, c, endpointMastery, u)
	if err != nil {
		return nil, err
	}
	result := make([]domain.ChampionMastery, 0, len(*masteries))
	for _, m := range *masteries {
		result = append(result, m.toDomain(c.champions))
	}
	return result, nil
}

func doRequest[T any](ctx context.Context, client *RiotClient, endpoint, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", client.apiKey)
	req.Header.Set("Accept", "application/json")

	if err := ctx.Err(); err != nil {
		upstreamRequests.WithLabelValues(endpoint, "canceled").Inc()
		return nil, &domain.UpstreamError{Kind: domain.ErrUpstream, Endpoint: endpoint}
	}

	deadline, ok := ctx.Deadline()
	if !ok || time.Until(deadline) > client.timeout {
		deadline = time.Now().Add(client.timeout)
	}

	start := time.Now()
	err := client.client.DoDeadline(req, resp, deadline)
	upstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		upstreamRequests.WithLabelValues(endpoint, "transport_error").Inc()
		client.logger.Warn().Err(err).Str("endpoint", endpoint).
			Bool("timeout", errors.Is(err, fasthttp.ErrTimeout)).
			Msg("upstream request failed")
		return nil, &domain.UpstreamError{Kind: domain.ErrUpstream, Endpoint: endpoint}
	}

	client.updateRateLimit(resp)

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		upstreamRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
		ue := &domain.UpstreamError{
			Kind:     domain.KindForStatus(status),
			Endpoint: endpoint,
			Status:   status,
		}
		if status == fasthttp.StatusTooManyRequests {
			if secs, err := strconv.Atoi(string(resp.Header.Peek("Retry-After"))); err == nil && secs > 0 {
				ue.RetryAfter = time.Duration(secs) * time.Second
			}
		}
		client.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", status).
			Str("body", truncate(resp.Body(), constants.MaxLoggedBodyBytes)).
			Msg("upstream returned error status")
		return nil, ue
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		upstreamRequests.WithLabelValues(endpoint, "decode_error").Inc()
		client.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("failed to decode upstream payload")
		return nil, &domain.UpstreamError{Kind: domain.ErrUpstream, Endpoint: endpoint, Status: status}
	}
	upstreamRequests.WithLabelValues(endpoint, "ok").Inc()
	return &result, nil
}

// pathSegment escapes s for use as a single path segment. Dot segments are
// encoded too so the upstream cannot resolve them as relative references.
func pathSegment(s string) string {
	if s == "." || s == ".." {
		return strings.ReplaceAll(s, ".", "%2E")
	}
	return url.PathEscape(s)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
