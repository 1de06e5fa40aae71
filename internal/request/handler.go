package request

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/skill-exchange/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, requesterID int64, dto CreateRequestDTO) (*Request, error)
	Accept(ctx context.Context, requestID, actorID int64) (*Request, error)
	Decline(ctx context.Context, requestID, actorID int64) (*Request, error)
	Get(ctx context.Context, requestID, callerID int64) (*Request, error)
	List(ctx context.Context, filter ListFilter) ([]*Request, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: svc}
}

// CreateRequest handles POST /requests
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.CurrentUserID(w, r)
	if !ok {
		return
	}

	var dto CreateRequestDTO
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

// GetRequests handles GET /requests?type=incoming|outgoing
func (h *Handler) GetRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.CurrentUserID(w, r)
	if !ok {
		return
	}

	direction, err := ParseDirection(r.URL.Query().Get("type"))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	limit, offset := h.Pagination(r)
	requests, err := h.Service.List(r.Context(), ListFilter{
		UserID:    userID,
		Direction: direction,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, RequestsResponse{Requests: requests, Limit: limit, Offset: offset})
}

// GetRequest handles GET /requests/{id}
func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.CurrentUserID(w, r)
	if !ok {
		return
	}
	requestID, ok := h.IDParam(w, r, "id")
	if !ok {
		return
	}

	req, err := h.Service.Get(r.Context(), requestID, userID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

// AcceptRequest handles PATCH /requests/{id}/accept
func (h *Handler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.Service.Accept)
}

// DeclineRequest handles PATCH /requests/{id}/decline
func (h *Handler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.Service.Decline)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, requestID, actorID int64) (*Request, error)) {
	userID, ok := h.CurrentUserID(w, r)
	if !ok {
		return
	}
	requestID, ok := h.IDParam(w, r, "id")
	if !ok {
		return
	}

	req, err := action(r.Context(), requestID, userID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}
