package want

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
	wantDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/want"
)

type RepositoryAPI interface {
	Create(ctx context.Context, want *wantDatamodel.Want) error
	ListByUser(ctx context.Context, userID int64) ([]wantDatamodel.Want, error)
}

type Service struct {
	repo         RepositoryAPI
	logger       *slog.Logger
	queryTimeout time.Duration
}

func NewService(repo RepositoryAPI, logger *slog.Logger, queryTimeout time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, queryTimeout: queryTimeout}
}

func (s *Service) Create(ctx context.Context, userID int64, dto CreateWantDTO) (*Want, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	row := &wantDatamodel.Want{
		Title:       dto.Title,
		Description: dto.Description,
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create want", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to create want", err)
	}

	s.logger.Info("want created", "want_id", row.ID, "user_id", userID)
	return FromDataModel(row), nil
}

// ListOwn returns the caller's wants, newest first.
func (s *Service) ListOwn(ctx context.Context, userID int64) ([]*Want, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list wants", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list wants", err)
	}

	wants := make([]*Want, 0, len(rows))
	for i := range rows {
		wants = append(wants, FromDataModel(&rows[i]))
	}
	return wants, nil
}
