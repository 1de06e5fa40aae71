package postgres

import (
	"context"
	"fmt"

	permissionDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/permission"
	skillDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/skill"
	skillPostgres "github.com/frahmantamala/skill-exchange/internal/skill/postgres"
	"gorm.io/gorm"
)

type AccessRepository struct {
	db *gorm.DB
}

func NewAccessRepository(db *gorm.DB) *AccessRepository {
	return &AccessRepository{db: db}
}

func (r *AccessRepository) HasPermission(ctx context.Context, userID, skillID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&permissionDatamodel.Permission{}).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check permission of user %d on skill %d: %w", userID, skillID, err)
	}
	return count > 0, nil
}

func (r *AccessRepository) ListAuthorizedSkills(ctx context.Context, userID int64) ([]skillDatamodel.Listing, error) {
	listings := make([]skillDatamodel.Listing, 0)
	err := r.db.WithContext(ctx).
		Scopes(skillPostgres.WithOwner).
		Joins("JOIN permissions ON permissions.skill_id = skills.id").
		Where("permissions.user_id = ?", userID).
		Scan(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("list authorized skills for user %d: %w", userID, err)
	}
	return listings, nil
}
