package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lol-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type BoardRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewBoardRepository(sqlDB *sql.DB, logger zerolog.Logger) *BoardRepository {
	return &BoardRepository{db: sqlDB, logger: logger}
}

const selectBoard = `SELECT id, title, content, author_id, author_name, view_count, created_at, updated_at FROM boards`

// sortColumns whitelists the ORDER BY targets callers may request.
var sortColumns = map[string]string{
	"createdDate": "created_at",
	"viewCount":   "view_count",
	"title":       "title",
}

func SortColumn(sortBy string) (string, bool) {
	col, ok := sortColumns[sortBy]
	return col, ok
}

func (r *BoardRepository) Create(ctx context.Context, b *domain.Board) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO boards (title, content, author_id, author_name, view_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?)`,
		b.Title, b.Content, b.AuthorID, b.AuthorName, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("board title %q: %w", b.Title, domain.ErrConflict)
		}
		return fmt.Errorf("failed to insert board: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read board id: %w", err)
	}
	b.ID, b.ViewCount, b.CreatedAt, b.UpdatedAt = id, 0, now, now
	return nil
}

func (r *BoardRepository) GetByID(ctx context.Context, id int64) (*domain.Board, error) {
	row := r.db.QueryRowContext(ctx, selectBoard+` WHERE id = ?`, id)
	b, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

// GetAndIncrementViews bumps the view counter and returns the updated row.
func (r *BoardRepository) GetAndIncrementViews(ctx context.Context, id int64) (*domain.Board, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE boards SET view_count = view_count + 1 WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to increment views: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	b, err := scanBoard(tx.QueryRowContext(ctx, selectBoard+` WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	return b, tx.Commit()
}

func (r *BoardRepository) Update(ctx context.Context, b *domain.Board) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE boards SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		b.Title, b.Content, now, b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("board title %q: %w", b.Title, domain.ErrConflict)
		}
		return fmt.Errorf("failed to update board %d: %w", b.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	b.UpdatedAt = now
	return nil
}

func (r *BoardRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete board %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List pages boards in descending order of the given sort key. The key must
// come from SortColumn.
func (r *BoardRepository) List(ctx context.Context, page, size int, sortBy string) (domain.BoardPage, error) {
	col, ok := SortColumn(sortBy)
	if !ok {
		col = "created_at"
	}

	total, err := r.Count(ctx)
	if err != nil {
		return domain.BoardPage{}, err
	}

	query := fmt.Sprintf(`%s ORDER BY %s DESC, id DESC LIMIT ? OFFSET ?`, selectBoard, col)
	items, err := r.query(ctx, query, size, page*size)
	if err != nil {
		return domain.BoardPage{}, err
	}

	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return domain.BoardPage{
		Items:      items,
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (r *BoardRepository) Search(ctx context.Context, keyword string) ([]domain.Board, error) {
	pattern := likePattern(keyword)
	return r.query(ctx, selectBoard+` WHERE title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, id DESC`, pattern, pattern)
}

func (r *BoardRepository) ByAuthor(ctx context.Context, author string) ([]domain.Board, error) {
	return r.query(ctx, selectBoard+` WHERE author_name = ? ORDER BY created_at DESC, id DESC`, author)
}

func (r *BoardRepository) Recent(ctx context.Context, limit int) ([]domain.Board, error) {
	return r.query(ctx, selectBoard+` ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

func (r *BoardRepository) Popular(ctx context.Context, limit int) ([]domain.Board, error) {
	return r.query(ctx, selectBoard+` ORDER BY view_count DESC, id DESC LIMIT ?`, limit)
}

func (r *BoardRepository) AuthorStats(ctx context.Context, author string) (domain.AuthorStats, error) {
	stats := domain.AuthorStats{Author: author}
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(view_count), 0) FROM boards WHERE author_name = ?`, author).
		Scan(&stats.PostCount, &stats.TotalViews)
	if err != nil {
		return stats, fmt.Errorf("failed to aggregate author stats: %w", err)
	}
	if stats.PostCount > 0 {
		var latest time.Time
		err := r.db.QueryRowContext(ctx,
			`SELECT created_at FROM boards WHERE author_name = ? ORDER BY created_at DESC LIMIT 1`, author).Scan(&latest)
		if err != nil {
			return stats, fmt.Errorf("failed to read latest post: %w", err)
		}
		stats.LatestPost = &latest
	}
	return stats, nil
}

func (r *BoardRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM boards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count boards: %w", err)
	}
	return n, nil
}

func (r *BoardRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM boards WHERE id = ?)`, id).Scan(&found)
	return found, err
}

// TitleTaken reports whether another board (not excludeID) uses title.
func (r *BoardRepository) TitleTaken(ctx context.Context, title string, excludeID int64) (bool, error) {
	var found bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM boards WHERE title = ? AND id != ?)`, title, excludeID).Scan(&found)
	return found, err
}

func (r *BoardRepository) query(ctx context.Context, query string, args ...any) ([]domain.Board, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Board{}
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	return result, rows.Err()
}

func scanBoard(s scanner) (*domain.Board, error) {
	var b domain.Board
	err := s.Scan(&b.ID, &b.Title, &b.Content, &b.AuthorID, &b.AuthorName, &b.ViewCount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
