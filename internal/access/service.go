package access

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
	skillDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/skill"
	"github.com/frahmantamala/skill-exchange/internal/media"
	"github.com/frahmantamala/skill-exchange/internal/skill"
)

type SkillLookup interface {
	GetByID(ctx context.Context, id int64) (*skillDatamodel.Skill, error)
}

type RepositoryAPI interface {
	HasPermission(ctx context.Context, userID, skillID int64) (bool, error)
	// ListAuthorizedSkills returns the skills userID holds a permission for, newest first.
	ListAuthorizedSkills(ctx context.Context, userID int64) ([]skillDatamodel.Listing, error)
}

type MediaOpener interface {
	Open(ctx context.Context, ref string) (*media.Object, error)
}

// Service decides who may watch a skill video and hands out the bytes.
type Service struct {
	skills       SkillLookup
	repo         RepositoryAPI
	media        MediaOpener
	logger       *slog.Logger
	queryTimeout time.Duration
}

func NewService(skills SkillLookup, repo RepositoryAPI, opener MediaOpener, logger *slog.Logger, queryTimeout time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		skills:       skills,
		repo:         repo,
		media:        opener,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// Authorize returns the skill when viewerID owns it or holds a permission for it.
func (s *Service) Authorize(ctx context.Context, viewerID, skillID int64) (*skill.Skill, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	row, err := s.skills.GetByID(ctx, skillID)
	if err != nil {
		s.logger.Error("failed to load skill for access check", "skill_id", skillID, "error", err)
		return nil, internal.NewInternalError("failed to check access", err)
	}
	if row == nil {
		return nil, internal.ErrSkillNotFound
	}
	if row.UserID == viewerID {
		return skill.FromDataModel(row), nil
	}

	allowed, err := s.repo.HasPermission(ctx, viewerID, skillID)
	if err != nil {
		s.logger.Error("failed to check permission", "user_id", viewerID, "skill_id", skillID, "error", err)
		return nil, internal.NewInternalError("failed to check access", err)
	}
	if !allowed {
		s.logger.Info("stream access denied", "user_id", viewerID, "skill_id", skillID)
		return nil, internal.ErrMediaAccessDenied
	}
	return skill.FromDataModel(row), nil
}

// Open authorizes viewerID and opens the skill video. The caller closes Body.
func (s *Service) Open(ctx context.Context, viewerID, skillID int64) (*media.Object, error) {
	sk, err := s.Authorize(ctx, viewerID, skillID)
	if err != nil {
		return nil, err
	}

	// not bounded by queryTimeout: the body is read for as long as the client streams
	obj, err := s.media.Open(ctx, sk.Video)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) || errors.Is(err, media.ErrInvalidReference) {
			s.logger.Warn("skill video missing", "skill_id", skillID, "error", err)
			return nil, internal.ErrMediaNotFound
		}
		s.logger.Error("failed to open skill video", "skill_id", skillID, "error", err)
		return nil, internal.NewInternalError("failed to open video", err)
	}
	return obj, nil
}

func (s *Service) ListAuthorized(ctx context.Context, viewerID int64) ([]*skill.Listing, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.repo.ListAuthorizedSkills(ctx, viewerID)
	if err != nil {
		s.logger.Error("failed to list authorized skills", "user_id", viewerID, "error", err)
		return nil, internal.NewInternalError("failed to list authorized skills", err)
	}
	return skill.FromListings(rows), nil
}
