package access

import "github.com/frahmantamala/skill-exchange/internal/skill"

// AuthorizedResponse lists the skills a viewer was granted access to.
type AuthorizedResponse struct {
	Skills []*skill.Listing `json:"skills"`
}
