package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
	permissionDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/permission"
	requestDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/request"
	"github.com/frahmantamala/skill-exchange/internal/request"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *requestDatamodel.Request) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrDuplicatePendingRequest
		}
		return fmt.Errorf("create request: %w", err)
	}
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*requestDatamodel.Request, error) {
	var req requestDatamodel.Request
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request %d: %w", id, err)
	}
	return &req, nil
}

func (r *RequestRepository) HasPending(ctx context.Context, fromID, skillID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&requestDatamodel.Request{}).
		Where("from_id = ? AND skill_id = ? AND status = ?", fromID, skillID, request.StatusPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check pending request: %w", err)
	}
	return count > 0, nil
}

// Resolve updates the status and, when asked, grants the permission inside
// one transaction.
func (r *RequestRepository) Resolve(ctx context.Context, params request.ResolveParams) (*requestDatamodel.Request, error) {
	var row requestDatamodel.Request

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", params.RequestID).Take(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrRequestNotFound
			}
			return fmt.Errorf("load request %d: %w", params.RequestID, err)
		}

		update := tx.Model(&requestDatamodel.Request{}).Where("id = ?", params.RequestID)
		if params.OnlyPending {
			update = update.Where("status = ?", request.StatusPending)
		}

		now := time.Now()
		res := update.Updates(map[string]interface{}{
			"status":     params.Status,
			"updated_at": now,
		})
		if res.Error != nil {
			return fmt.Errorf("update request %d: %w", params.RequestID, res.Error)
		}
		if res.RowsAffected == 0 {
			return internal.ErrRequestAlreadyResolved
		}

		if params.GrantPermission {
			grant := &permissionDatamodel.Permission{UserID: row.FromID, SkillID: row.SkillID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(grant).Error; err != nil {
				return fmt.Errorf("grant permission: %w", err)
			}
		}

		row.Status = params.Status
		row.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *RequestRepository) List(ctx context.Context, filter request.ListFilter) ([]requestDatamodel.Request, error) {
	query := r.db.WithContext(ctx).Model(&requestDatamodel.Request{})

	switch filter.Direction {
	case request.DirectionIncoming:
		query = query.Where("to_id = ?", filter.UserID)
	case request.DirectionOutgoing:
		query = query.Where("from_id = ?", filter.UserID)
	default:
		query = query.Where("to_id = ? OR from_id = ?", filter.UserID, filter.UserID)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	requests := make([]requestDatamodel.Request, 0)
	if err := query.Order("created_at DESC").Order("id DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("list requests for user %d: %w", filter.UserID, err)
	}
	return requests, nil
}
