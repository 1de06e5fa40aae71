package request

import (
	"github.com/frahmantamala/skill-exchange/internal"
	"github.com/frahmantamala/skill-exchange/internal/core/common/validation"
)

type CreateRequestDTO struct {
	SkillID int64 `json:"skill_id"`
}

func (d CreateRequestDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("skill_id", d.SkillID).
		Required().
		Custom(func(value interface{}) *internal.AppError {
			if id, ok := value.(int64); ok && id < 0 {
				return internal.NewValidationFieldError("skill_id", "skill_id must be positive", internal.ErrCodeInvalidID)
			}
			return nil
		})
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ListFilter selects the requests shown to a caller.
type ListFilter struct {
	UserID    int64
	Direction Direction
	Limit     int
	Offset    int
}

type RequestsResponse struct {
	Requests []*Request `json:"requests"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}
