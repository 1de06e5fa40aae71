package match

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
	skillDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/skill"
	"github.com/frahmantamala/skill-exchange/internal/skill"
)

// WantSource supplies the want titles of a user.
type WantSource interface {
	TitlesByUser(ctx context.Context, userID int64) ([]string, error)
}

type RepositoryAPI interface {
	// CandidateSkills returns skills not owned by userID whose lower-cased
	// title contains any of terms, newest first.
	CandidateSkills(ctx context.Context, userID int64, terms []string) ([]skillDatamodel.Listing, error)
}

type Service struct {
	wants        WantSource
	repo         RepositoryAPI
	logger       *slog.Logger
	queryTimeout time.Duration
}

func NewService(wants WantSource, repo RepositoryAPI, logger *slog.Logger, queryTimeout time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{wants: wants, repo: repo, logger: logger, queryTimeout: queryTimeout}
}

func (s *Service) ListMatches(ctx context.Context, userID int64) ([]*skill.Listing, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	titles, err := s.wants.TitlesByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load wants for matching", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list matches", err)
	}

	terms := Terms(titles)
	if len(terms) == 0 {
		return []*skill.Listing{}, nil
	}

	rows, err := s.repo.CandidateSkills(ctx, userID, terms)
	if err != nil {
		s.logger.Error("failed to match skills", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list matches", err)
	}

	s.logger.Debug("matched skills", "user_id", userID, "terms", len(terms), "matches", len(rows))
	return skill.FromListings(rows), nil
}
