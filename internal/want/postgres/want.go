package postgres

import (
	"context"
	"fmt"

	wantDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/want"
	"gorm.io/gorm"
)

type WantRepository struct {
	db *gorm.DB
}

func NewWantRepository(db *gorm.DB) *WantRepository {
	return &WantRepository{db: db}
}

func (r *WantRepository) Create(ctx context.Context, want *wantDatamodel.Want) error {
	if err := r.db.WithContext(ctx).Create(want).Error; err != nil {
		return fmt.Errorf("create want: %w", err)
	}
	return nil
}

func (r *WantRepository) ListByUser(ctx context.Context, userID int64) ([]wantDatamodel.Want, error) {
	wants := make([]wantDatamodel.Want, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&wants).Error
	if err != nil {
		return nil, fmt.Errorf("list wants for user %d: %w", userID, err)
	}
	return wants, nil
}

// TitlesByUser returns the want titles of userID.
func (r *WantRepository) TitlesByUser(ctx context.Context, userID int64) ([]string, error) {
	var titles []string
	err := r.db.WithContext(ctx).
		Model(&wantDatamodel.Want{}).
		Where("user_id = ?", userID).
		Pluck("title", &titles).Error
	if err != nil {
		return nil, fmt.Errorf("list want titles for user %d: %w", userID, err)
	}
	return titles, nil
}
