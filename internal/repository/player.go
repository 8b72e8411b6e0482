package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lol-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// PlayerRepository stores the last seen state of every looked-up player so
// the search box can suggest them.
type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const upsertPlayerLookup = `
INSERT INTO player_lookups (
    puuid, name, tag, platform, summoner_level, profile_icon_id, solo_rank,
    last_fetch_at, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(puuid) DO UPDATE SET
    name = excluded.name,
    tag = excluded.tag,
    platform = excluded.platform,
    summoner_level = excluded.summoner_level,
    profile_icon_id = excluded.profile_icon_id,
    solo_rank = excluded.solo_rank,
    last_fetch_at = excluded.last_fetch_at,
    updated_at = excluded.updated_at`

const selectPlayerLookup = `
SELECT puuid, name, tag, platform, summoner_level, profile_icon_id, solo_rank,
       last_fetch_at, created_at, updated_at
FROM player_lookups`

func (r *PlayerRepository) Upsert(ctx context.Context, p *domain.PlayerLookup) error {
	now := time.Now().UTC()
	created := p.CreatedAt
	if created.IsZero() {
		created = now
	}
	_, err := r.db.ExecContext(ctx, upsertPlayerLookup,
		p.Puuid, p.Name, p.Tag, p.Platform, p.SummonerLevel, p.ProfileIconID, p.SoloRank,
		p.LastFetchAt.UTC(), created.UTC(), now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", p.Puuid, err)
	}
	return nil
}

// GetByName finds the player whose Riot ID matches exactly, ignoring case.
func (r *PlayerRepository) GetByName(ctx context.Context, name, tag string) (*domain.PlayerLookup, error) {
	row := r.db.QueryRowContext(ctx,
		selectPlayerLookup+` WHERE name = ? COLLATE NOCASE AND tag = ? COLLATE NOCASE`, name, tag)
	p, err := scanLookup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// Search matches "name", "name#tag" or a tag fragment, most recent first.
func (r *PlayerRepository) Search(ctx context.Context, query string, limit int) ([]domain.PlayerLookup, error) {
	name, tag, hasTag := strings.Cut(query, "#")

	var (
		rows *sql.Rows
		err  error
	)
	if hasTag {
		rows, err = r.db.QueryContext(ctx,
			selectPlayerLookup+` WHERE name LIKE ? ESCAPE '\' AND tag LIKE ? ESCAPE '\'
			ORDER BY last_fetch_at DESC LIMIT ?`,
			likePattern(name), likePattern(tag), limit)
	} else {
		pattern := likePattern(query)
		rows, err = r.db.QueryContext(ctx,
			selectPlayerLookup+` WHERE name LIKE ? ESCAPE '\' OR tag LIKE ? ESCAPE '\'
			ORDER BY last_fetch_at DESC LIMIT ?`,
			pattern, pattern, limit)
	}
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search players")
		return nil, err
	}
	defer rows.Close()

	result := []domain.PlayerLookup{}
	for rows.Next() {
		p, err := scanLookup(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLookup(s scanner) (*domain.PlayerLookup, error) {
	var p domain.PlayerLookup
	err := s.Scan(&p.Puuid, &p.Name, &p.Tag, &p.Platform, &p.SummonerLevel, &p.ProfileIconID,
		&p.SoloRank, &p.LastFetchAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// likePattern wraps s for a substring LIKE match, escaping wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}
