package skill

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
	skillDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/skill"
)

type RepositoryAPI interface {
	Create(ctx context.Context, skill *skillDatamodel.Skill) error
	GetListing(ctx context.Context, id int64) (*skillDatamodel.Listing, error)
	ListListings(ctx context.Context) ([]skillDatamodel.Listing, error)
}

// MediaSaver is the part of the media store the catalog writes to.
type MediaSaver interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

type Service struct {
	repo         RepositoryAPI
	media        MediaSaver
	logger       *slog.Logger
	queryTimeout time.Duration
}

func NewService(repo RepositoryAPI, media MediaSaver, logger *slog.Logger, queryTimeout time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:         repo,
		media:        media,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// Create stores the video first and then the skill row pointing at it. If
// the row cannot be written the stored video is removed again.
func (s *Service) Create(ctx context.Context, userID int64, dto CreateSkillDTO, filename string, video io.Reader) (*Listing, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if video == nil {
		return nil, internal.NewValidationFieldError("video", "video is required", internal.ErrCodeMissingVideo)
	}

	ref, err := s.media.Save(ctx, filename, video)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to store skill video", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to store video", err)
	}

	dbCtx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	row := &skillDatamodel.Skill{
		Title:       dto.Title,
		Description: dto.Description,
		Video:       ref,
		UserID:      userID,
	}
	if err := s.repo.Create(dbCtx, row); err != nil {
		s.logger.Error("failed to create skill", "user_id", userID, "error", err)
		if delErr := s.media.Delete(context.WithoutCancel(ctx), ref); delErr != nil {
			s.logger.Warn("failed to remove orphaned video", "ref", ref, "error", delErr)
		}
		return nil, internal.NewInternalError("failed to create skill", err)
	}

	listing, err := s.repo.GetListing(dbCtx, row.ID)
	if err != nil || listing == nil {
		s.logger.Error("failed to reload skill", "skill_id", row.ID, "error", err)
		return nil, internal.NewInternalError("failed to load skill", err)
	}

	s.logger.Info("skill created", "skill_id", row.ID, "user_id", userID)
	return FromListing(listing), nil
}

// List returns every skill with its owner, newest first.
func (s *Service) List(ctx context.Context) ([]*Listing, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.repo.ListListings(ctx)
	if err != nil {
		s.logger.Error("failed to list skills", "error", err)
		return nil, internal.NewInternalError("failed to list skills", err)
	}
	return FromListings(rows), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Listing, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	row, err := s.repo.GetListing(ctx, id)
	if err != nil {
		s.logger.Error("failed to get skill", "skill_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get skill", err)
	}
	if row == nil {
		return nil, internal.ErrSkillNotFound
	}
	return FromListing(row), nil
}
