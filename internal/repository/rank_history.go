package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lol-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type RankHistoryRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRankHistoryRepository(sqlDB *sql.DB, logger zerolog.Logger) *RankHistoryRepository {
	return &RankHistoryRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const insertRankSnapshot = `
INSERT INTO rank_snapshots (
    id, puuid, queue_type, tier, division, league_points, wins, losses, recorded_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING`

func (r *RankHistoryRepository) InsertBatch(ctx context.Context, records []domain.RankSnapshot) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertRankSnapshot)
	if err != nil {
		return fmt.Errorf("failed to prepare rank snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		id := record.ID
		if id == "" {
			id, err = gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}
		recordedAt := record.RecordedAt
		if recordedAt.IsZero() {
			recordedAt = time.Now()
		}

		_, err := stmt.ExecContext(ctx,
			id, record.Puuid, string(record.QueueType), record.Tier, record.Division,
			record.LeaguePoints, record.Wins, record.Losses, recordedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert rank snapshot: %w", err)
		}
	}

	return tx.Commit()
}

// GetByPuuid returns snapshots newest first.
func (r *RankHistoryRepository) GetByPuuid(ctx context.Context, puuid string, limit int) ([]domain.RankSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, puuid, queue_type, tier, division, league_points, wins, losses, recorded_at
		FROM rank_snapshots
		WHERE puuid = ?
		ORDER BY recorded_at DESC, id
		LIMIT ?`, puuid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.RankSnapshot{}
	for rows.Next() {
		var s domain.RankSnapshot
		var queue string
		if err := rows.Scan(&s.ID, &s.Puuid, &queue, &s.Tier, &s.Division,
			&s.LeaguePoints, &s.Wins, &s.Losses, &s.RecordedAt); err != nil {
			return nil, err
		}
		s.QueueType = domain.QueueType(queue)
		result = append(result, s)
	}
	return result, rows.Err()
}
