package access

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/frahmantamala/skill-exchange/internal/media"
	"github.com/frahmantamala/skill-exchange/internal/skill"
	"github.com/frahmantamala/skill-exchange/internal/transport"
)

type ServiceAPI interface {
	Open(ctx context.Context, viewerID, skillID int64) (*media.Object, error)
	ListAuthorized(ctx context.Context, viewerID int64) ([]*skill.Listing, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: svc}
}

// StreamSkill handles GET /skills/{id}/stream
func (h *Handler) StreamSkill(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.CurrentUserID(w, r)
	if !ok {
		return
	}
	skillID, ok := h.IDParam(w, r, "id")
	if !ok {
		return
	}

	obj, err := h.Service.Open(r.Context(), userID, skillID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Cache-Control", "private, no-store")

	if rs, ok := obj.Body.(io.ReadSeeker); ok {
		http.ServeContent(w, r, "", obj.ModTime, rs)
		return
	}

	if obj.Size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	if !obj.ModTime.IsZero() {
		w.Header().Set("Last-Modified", obj.ModTime.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, obj.Body); err != nil {
		h.Logger.Warn("video stream interrupted", "skill_id", skillID, "user_id", userID, "error", err)
	}
}

// GetAuthorizedSkills handles GET /skills/authorized
func (h *Handler) GetAuthorizedSkills(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.CurrentUserID(w, r)
	if !ok {
		return
	}

	skills, err := h.Service.ListAuthorized(r.Context(), userID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, AuthorizedResponse{Skills: skills})
}
