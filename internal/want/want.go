package want

import (
	"time"

	wantDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/want"
)

type Want struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromDataModel(w *wantDatamodel.Want) *Want {
	return &Want{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		UserID:      w.UserID,
		CreatedAt:   w.CreatedAt,
	}
}
