package match

import (
	"context"
	"net/http"

	"github.com/frahmantamala/skill-exchange/internal/skill"
	"github.com/frahmantamala/skill-exchange/internal/transport"
)

type ServiceAPI interface {
	ListMatches(ctx context.Context, userID int64) ([]*skill.Listing, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: svc}
}

// GetMatches handles GET /matches
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.CurrentUserID(w, r)
	if !ok {
		return
	}

	matches, err := h.Service.ListMatches(r.Context(), userID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MatchesResponse{Matches: matches})
}
