package postgres

import (
	"context"
	"fmt"
	"strings"

	skillDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/skill"
	"github.com/frahmantamala/skill-exchange/internal/match"
	skillPostgres "github.com/frahmantamala/skill-exchange/internal/skill/postgres"
	"gorm.io/gorm"
)

// Case folding of skills.title happens in the database: Postgres lower()
// folds non-ASCII letters only under a UTF-8 collation, SQLite never does.
const titleContains = `LOWER(skills.title) LIKE ? ESCAPE '\'`

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) CandidateSkills(ctx context.Context, userID int64, terms []string) ([]skillDatamodel.Listing, error) {
	listings := make([]skillDatamodel.Listing, 0)
	if len(terms) == 0 {
		return listings, nil
	}

	clauses := make([]string, len(terms))
	args := make([]interface{}, len(terms))
	for i, term := range terms {
		clauses[i] = titleContains
		args[i] = match.ContainsPattern(term)
	}

	err := r.db.WithContext(ctx).
		Scopes(skillPostgres.WithOwner).
		Where("skills.user_id <> ?", userID).
		Where("("+strings.Join(clauses, " OR ")+")", args...).
		Scan(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("match skills for user %d: %w", userID, err)
	}
	return listings, nil
}
