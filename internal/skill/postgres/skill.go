package postgres

import (
	"context"
	"errors"
	"fmt"

	skillDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/skill"
	"gorm.io/gorm"
)

// WithOwner selects skills joined with the owner columns of a Listing.
// Newest first, id breaking ties.
func WithOwner(db *gorm.DB) *gorm.DB {
	return db.Table("skills").
		Select("skills.id, skills.title, skills.description, skills.video, skills.user_id, skills.created_at, " +
			"users.name AS owner_name, users.profession AS owner_profession").
		Joins("JOIN users ON users.id = skills.user_id").
		Order("skills.created_at DESC").
		Order("skills.id DESC")
}

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) Create(ctx context.Context, skill *skillDatamodel.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return fmt.Errorf("create skill: %w", err)
	}
	return nil
}

// GetByID returns the bare skill row, or nil when it does not exist.
func (r *SkillRepository) GetByID(ctx context.Context, id int64) (*skillDatamodel.Skill, error) {
	var skill skillDatamodel.Skill
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get skill %d: %w", id, err)
	}
	return &skill, nil
}

func (r *SkillRepository) GetListing(ctx context.Context, id int64) (*skillDatamodel.Listing, error) {
	var listings []skillDatamodel.Listing
	err := r.db.WithContext(ctx).
		Scopes(WithOwner).
		Where("skills.id = ?", id).
		Limit(1).
		Scan(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("get skill listing %d: %w", id, err)
	}
	if len(listings) == 0 {
		return nil, nil
	}
	return &listings[0], nil
}

func (r *SkillRepository) ListListings(ctx context.Context) ([]skillDatamodel.Listing, error) {
	listings := make([]skillDatamodel.Listing, 0)
	if err := r.db.WithContext(ctx).Scopes(WithOwner).Scan(&listings).Error; err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return listings, nil
}
