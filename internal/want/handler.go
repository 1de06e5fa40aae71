package want

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/skill-exchange/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, userID int64, dto CreateWantDTO) (*Want, error)
	ListOwn(ctx context.Context, userID int64) ([]*Want, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: svc}
}

// CreateWant handles POST /wants
func (h *Handler) CreateWant(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.CurrentUserID(w, r)
	if !ok {
		return
	}

	var dto CreateWantDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(r.Context(), userID, dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// GetWants handles GET /wants
func (h *Handler) GetWants(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.CurrentUserID(w, r)
	if !ok {
		return
	}

	wants, err := h.Service.ListOwn(r.Context(), userID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, WantsResponse{Wants: wants})
}
