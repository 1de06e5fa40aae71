package skill

import (
	"fmt"
	"time"

	skillDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/skill"
)

type Skill struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Video       string    `json:"-"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Owner is the slice of the owner's profile shown next to a skill.
type Owner struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Profession string `json:"profession,omitempty"`
}

// Listing is a skill as the catalog presents it.
type Listing struct {
	Skill
	Owner     Owner  `json:"owner"`
	StreamURL string `json:"stream_url"`
}

// StreamPath is where the gated video of skillID can be fetched.
func StreamPath(skillID int64) string {
	return fmt.Sprintf("/api/v1/skills/%d/stream", skillID)
}

func FromDataModel(s *skillDatamodel.Skill) *Skill {
	return &Skill{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Video:       s.Video,
		UserID:      s.UserID,
		CreatedAt:   s.CreatedAt,
	}
}

func FromListing(l *skillDatamodel.Listing) *Listing {
	return &Listing{
		Skill: *FromDataModel(&l.Skill),
		Owner: Owner{
			ID:         l.UserID,
			Name:       l.OwnerName,
			Profession: l.OwnerProfession,
		},
		StreamURL: StreamPath(l.ID),
	}
}

func FromListings(rows []skillDatamodel.Listing) []*Listing {
	out := make([]*Listing, 0, len(rows))
	for i := range rows {
		out = append(out, FromListing(&rows[i]))
	}
	return out
}
