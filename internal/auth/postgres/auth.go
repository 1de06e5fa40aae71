package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/skill-exchange/internal"
	"github.com/frahmantamala/skill-exchange/internal/auth"
	userDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) CreateAccount(ctx context.Context, account *auth.NewAccount) (*auth.Account, error) {
	row := &userDatamodel.User{
		Name:         account.Name,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Mobile:       account.Mobile,
		Age:          account.Age,
		Profession:   account.Profession,
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &auth.Account{
		ID:         row.ID,
		Name:       row.Name,
		Email:      row.Email,
		Mobile:     row.Mobile,
		Age:        row.Age,
		Profession: row.Profession,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func (r *Repository) GetCredentialsByEmail(ctx context.Context, email string) (*auth.Credentials, error) {
	var row userDatamodel.User
	err := r.db.WithContext(ctx).
		Select("id", "password_hash").
		Where("email = ?", email).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credentials: %w", err)
	}
	return &auth.Credentials{UserID: row.ID, PasswordHash: row.PasswordHash}, nil
}

func (r *Repository) UserExists(ctx context.Context, userID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check user %d: %w", userID, err)
	}
	return count > 0, nil
}
