package request

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
	requestDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/request"
	skillDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/skill"
	"github.com/frahmantamala/skill-exchange/internal/core/events"
)

// ResolveParams describes one accept or decline.
type ResolveParams struct {
	RequestID int64
	Status    string
	// GrantPermission upserts Permission(from_id, skill_id) in the same transaction.
	GrantPermission bool
	// OnlyPending makes the update conditional on the request still being pending.
	OnlyPending bool
}

// Repository persists requests. Lookups return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, req *requestDatamodel.Request) error
	GetByID(ctx context.Context, id int64) (*requestDatamodel.Request, error)
	HasPending(ctx context.Context, fromID, skillID int64) (bool, error)
	Resolve(ctx context.Context, params ResolveParams) (*requestDatamodel.Request, error)
	List(ctx context.Context, filter ListFilter) ([]requestDatamodel.Request, error)
}

type SkillLookup interface {
	GetByID(ctx context.Context, id int64) (*skillDatamodel.Skill, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Config struct {
	// StrictTransitions rejects accept/decline once a request left pending.
	StrictTransitions bool
	QueryTimeout      time.Duration
}

type Service struct {
	repo      Repository
	skills    SkillLookup
	publisher EventPublisher
	logger    *slog.Logger
	cfg       Config
}

func NewService(repo Repository, skills SkillLookup, publisher EventPublisher, logger *slog.Logger, cfg Config) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		skills:    skills,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// Create files a pending request from requesterID to the owner of the skill.
func (s *Service) Create(ctx context.Context, requesterID int64, dto CreateRequestDTO) (*Request, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	sk, err := s.skills.GetByID(ctx, dto.SkillID)
	if err != nil {
		s.logger.Error("failed to load skill for request", "skill_id", dto.SkillID, "error", err)
		return nil, internal.NewInternalError("failed to create request", err)
	}
	if sk == nil {
		return nil, internal.ErrSkillNotFound
	}
	if sk.UserID == requesterID {
		return nil, internal.ErrSelfRequest
	}

	pending, err := s.repo.HasPending(ctx, requesterID, sk.ID)
	if err != nil {
		s.logger.Error("failed to check pending requests", "user_id", requesterID, "skill_id", sk.ID, "error", err)
		return nil, internal.NewInternalError("failed to create request", err)
	}
	if pending {
		return nil, internal.ErrDuplicatePendingRequest
	}

	row := &requestDatamodel.Request{
		FromID:  requesterID,
		ToID:    sk.UserID,
		SkillID: sk.ID,
		Status:  StatusPending,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		// a concurrent create lost the race on the partial unique index
		if errors.Is(err, internal.ErrDuplicatePendingRequest) {
			return nil, internal.ErrDuplicatePendingRequest
		}
		s.logger.Error("failed to create request", "user_id", requesterID, "skill_id", sk.ID, "error", err)
		return nil, internal.NewInternalError("failed to create request", err)
	}

	s.logger.Info("request created",
		"request_id", row.ID,
		"from_id", row.FromID,
		"to_id", row.ToID,
		"skill_id", row.SkillID)

	s.publish(ctx, events.EventTypeRequestCreated, row, requesterID)
	return FromDataModel(row), nil
}

// Accept marks the request accepted and grants the requester permission to
// view the skill. Accepting again leaves exactly one permission.
func (s *Service) Accept(ctx context.Context, requestID, actorID int64) (*Request, error) {
	return s.resolve(ctx, requestID, actorID, StatusAccepted)
}

// Decline marks the request declined. Existing permissions are untouched.
func (s *Service) Decline(ctx context.Context, requestID, actorID int64) (*Request, error) {
	return s.resolve(ctx, requestID, actorID, StatusDeclined)
}

func (s *Service) resolve(ctx context.Context, requestID, actorID int64, status string) (*Request, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	current, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		s.logger.Error("failed to load request", "request_id", requestID, "error", err)
		return nil, internal.NewInternalError("failed to resolve request", err)
	}
	if current == nil {
		return nil, internal.ErrRequestNotFound
	}
	if current.ToID != actorID {
		s.logger.Warn("request resolution denied",
			"request_id", requestID,
			"actor_id", actorID,
			"to_id", current.ToID)
		return nil, internal.ErrNotRequestTarget
	}
	if s.cfg.StrictTransitions && current.Status != StatusPending {
		return nil, internal.ErrRequestAlreadyResolved
	}

	updated, err := s.repo.Resolve(ctx, ResolveParams{
		RequestID:       requestID,
		Status:          status,
		GrantPermission: status == StatusAccepted,
		OnlyPending:     s.cfg.StrictTransitions,
	})
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to resolve request", "request_id", requestID, "status", status, "error", err)
		return nil, internal.NewInternalError("failed to resolve request", err)
	}

	s.logger.Info("request resolved",
		"request_id", updated.ID,
		"status", updated.Status,
		"previous_status", current.Status,
		"actor_id", actorID)

	eventType := events.EventTypeRequestDeclined
	if status == StatusAccepted {
		eventType = events.EventTypeRequestAccepted
	}
	s.publish(ctx, eventType, updated, actorID)
	return FromDataModel(updated), nil
}

// Get returns a request to its requester or its target.
func (s *Service) Get(ctx context.Context, requestID, callerID int64) (*Request, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		s.logger.Error("failed to get request", "request_id", requestID, "error", err)
		return nil, internal.NewInternalError("failed to get request", err)
	}
	if row == nil {
		return nil, internal.ErrRequestNotFound
	}

	req := FromDataModel(row)
	if !req.Involves(callerID) {
		return nil, internal.ErrNotRequestParty
	}
	return req, nil
}

// List returns the caller's requests in the given direction, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Request, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list requests", "user_id", filter.UserID, "direction", filter.Direction, "error", err)
		return nil, internal.NewInternalError("failed to list requests", err)
	}

	requests := make([]*Request, 0, len(rows))
	for i := range rows {
		requests = append(requests, FromDataModel(&rows[i]))
	}
	return requests, nil
}

func (s *Service) publish(ctx context.Context, eventType string, row *requestDatamodel.Request, actorID int64) {
	if s.publisher == nil {
		return
	}
	event := events.NewRequestEvent(eventType, row.ID, row.FromID, row.ToID, row.SkillID, row.Status, actorID)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish request event", "event_type", eventType, "request_id", row.ID, "error", err)
	}
}
