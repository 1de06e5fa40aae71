package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
)

type Repository interface {
	GetByID(ctx context.Context, userID int64) (*User, error)
}

type Service struct {
	repo         Repository
	logger       *slog.Logger
	queryTimeout time.Duration
}

func NewService(repo Repository, logger *slog.Logger, queryTimeout time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:         repo,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load user", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}
