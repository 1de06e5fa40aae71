package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/frahmantamala/skill-exchange/internal/user"
	"github.com/jmoiron/sqlx"
)

const selectProfile = `SELECT id, name, email, mobile, age, profession, created_at, updated_at FROM users WHERE id = ?`

// Repository reads profiles through sqlx. Queries are written with ? and
// rebound for the connected driver.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, userID int64) (*user.User, error) {
	var u user.User
	if err := r.db.GetContext(ctx, &u, r.db.Rebind(selectProfile), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return &u, nil
}
