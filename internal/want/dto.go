package want

import (
	"strings"

	"github.com/frahmantamala/skill-exchange/internal/core/common/validation"
)

type CreateWantDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (d *CreateWantDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
}

func (d CreateWantDTO) Validate() error {
	v := validation.NewValidator().
		Title("title", d.Title).
		Description("description", d.Description)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type WantsResponse struct {
	Wants []*Want `json:"wants"`
}
