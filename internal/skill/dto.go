package skill

import (
	"strings"

	"github.com/frahmantamala/skill-exchange/internal/core/common/validation"
)

// CreateSkillDTO holds the text fields of the multipart upload form.
type CreateSkillDTO struct {
	Title       string
	Description string
}

func (d *CreateSkillDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
}

func (d CreateSkillDTO) Validate() error {
	v := validation.NewValidator().
		Title("title", d.Title).
		Description("description", d.Description)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type SkillsResponse struct {
	Skills []*Listing `json:"skills"`
}
