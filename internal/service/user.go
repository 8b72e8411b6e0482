package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lol-tracker/internal/auth"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, since time.Time) (domain.UserStats, error)
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20,username"`
	Password string `json:"password" validate:"required,min=8,max=30,password"`
	Email    string `json:"email" validate:"required,email,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
	User      *domain.User
}

type UserService struct {
	users    UserStore
	tokens   *auth.TokenIssuer
	hasher   *auth.PasswordHasher
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

func NewUserService(users UserStore, tokens *auth.TokenIssuer, hasher *auth.PasswordHasher, validate *validator.Validate, logger zerolog.Logger) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		validate: validate,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	if taken, err := s.users.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("username %s already exists: %w", req.Username, domain.ErrConflict)
	}
	if taken, err := s.users.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("email %s already exists: %w", req.Email, domain.ErrConflict)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user signed up")
	return user, nil
}

// Login never reveals whether the username or the password was wrong.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Info().Str("username", req.Username).Msg("login failed")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Matches(user.PasswordHash, req.Password) {
		s.logger.Info().Str("username", req.Username).Msg("login failed")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	return &LoginResult{Token: token, ExpiresIn: s.tokens.Expiration(), User: user}, nil
}

func (s *UserService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	taken, err := s.users.ExistsByUsername(ctx, strings.TrimSpace(username))
	return !taken, err
}

func (s *UserService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	taken, err := s.users.ExistsByEmail(ctx, strings.TrimSpace(email))
	return !taken, err
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// Delete lets users remove themselves; admins may remove anyone.
func (s *UserService) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	if actor.UserID != id && !actor.IsAdmin() {
		return fmt.Errorf("user %d may not delete user %d: %w", actor.UserID, id, domain.ErrForbidden)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Int64("actor_id", actor.UserID).Msg("user deleted")
	return nil
}

func (s *UserService) Stats(ctx context.Context) (domain.UserStats, error) {
	return s.users.Stats(ctx, s.now().Add(-constants.RecentSignupWindow))
}
