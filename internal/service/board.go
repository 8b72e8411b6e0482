package service

import (
	"context"
	"fmt"
	"strings"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type BoardStore interface {
	Create(ctx context.Context, b *domain.Board) error
	GetByID(ctx context.Context, id int64) (*domain.Board, error)
	GetAndIncrementViews(ctx context.Context, id int64) (*domain.Board, error)
	Update(ctx context.Context, b *domain.Board) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, size int, sortBy string) (domain.BoardPage, error)
	Search(ctx context.Context, keyword string) ([]domain.Board, error)
	ByAuthor(ctx context.Context, author string) ([]domain.Board, error)
	Recent(ctx context.Context, limit int) ([]domain.Board, error)
	Popular(ctx context.Context, limit int) ([]domain.Board, error)
	AuthorStats(ctx context.Context, author string) (domain.AuthorStats, error)
	Count(ctx context.Context) (int, error)
	Exists(ctx context.Context, id int64) (bool, error)
	TitleTaken(ctx context.Context, title string, excludeID int64) (bool, error)
}

type BoardRequest struct {
	Title   string `json:"title" validate:"notblank,max=100"`
	Content string `json:"content" validate:"notblank,max=5000"`
}

type BoardService struct {
	boards   BoardStore
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewBoardService(boards BoardStore, validate *validator.Validate, logger zerolog.Logger) *BoardService {
	return &BoardService{boards: boards, validate: validate, logger: logger}
}

func (s *BoardService) List(ctx context.Context, page, size int, sortBy string) (domain.BoardPage, error) {
	if page < 0 {
		return domain.BoardPage{}, domain.NewValidationError("page", "must not be negative")
	}
	if size < 1 || size > constants.MaxBoardPageSize {
		return domain.BoardPage{}, domain.NewValidationError("size", fmt.Sprintf("must be between 1 and %d", constants.MaxBoardPageSize))
	}
	if sortBy == "" {
		sortBy = "createdDate"
	}
	if _, ok := repository.SortColumn(sortBy); !ok {
		return domain.BoardPage{}, domain.NewValidationError("sortBy", "must be one of createdDate, viewCount, title")
	}
	return s.boards.List(ctx, page, size, sortBy)
}

// Get returns the board and counts the read.
func (s *BoardService) Get(ctx context.Context, id int64) (*domain.Board, error) {
	return s.boards.GetAndIncrementViews(ctx, id)
}

func (s *BoardService) Create(ctx context.Context, author domain.Principal, req BoardRequest) (*domain.Board, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	if taken, err := s.boards.TitleTaken(ctx, req.Title, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("board title %q: %w", req.Title, domain.ErrConflict)
	}

	b := &domain.Board{
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   author.UserID,
		AuthorName: author.Username,
	}
	if err := s.boards.Create(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("board_id", b.ID).Str("author", b.AuthorName).Msg("board created")
	return b, nil
}

func (s *BoardService) Update(ctx context.Context, actor domain.Principal, id int64, req BoardRequest) (*domain.Board, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	b, err := s.authorOnly(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if taken, err := s.boards.TitleTaken(ctx, req.Title, id); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("board title %q: %w", req.Title, domain.ErrConflict)
	}

	b.Title, b.Content = req.Title, req.Content
	if err := s.boards.Update(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("board_id", id).Msg("board updated")
	return b, nil
}

func (s *BoardService) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	if _, err := s.authorOnly(ctx, actor, id); err != nil {
		return err
	}
	if err := s.boards.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("board_id", id).Msg("board deleted")
	return nil
}

func (s *BoardService) authorOnly(ctx context.Context, actor domain.Principal, id int64) (*domain.Board, error) {
	b, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.AuthorID != actor.UserID {
		return nil, fmt.Errorf("board %d belongs to %s: %w", id, b.AuthorName, domain.ErrForbidden)
	}
	return b, nil
}

func (s *BoardService) Search(ctx context.Context, keyword string) ([]domain.Board, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, domain.NewValidationError("keyword", "must not be blank")
	}
	return s.boards.Search(ctx, keyword)
}

func (s *BoardService) ByAuthor(ctx context.Context, author string) ([]domain.Board, error) {
	return s.boards.ByAuthor(ctx, author)
}

func (s *BoardService) Recent(ctx context.Context) ([]domain.Board, error) {
	return s.boards.Recent(ctx, constants.BoardListLimit)
}

func (s *BoardService) Popular(ctx context.Context) ([]domain.Board, error) {
	return s.boards.Popular(ctx, constants.BoardListLimit)
}

func (s *BoardService) AuthorStats(ctx context.Context, author string) (domain.AuthorStats, error) {
	return s.boards.AuthorStats(ctx, author)
}

func (s *BoardService) Count(ctx context.Context) (int, error) {
	return s.boards.Count(ctx)
}

func (s *BoardService) Exists(ctx context.Context, id int64) (bool, error) {
	return s.boards.Exists(ctx, id)
}
