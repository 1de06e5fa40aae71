package skill

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/frahmantamala/skill-exchange/internal"
	"github.com/frahmantamala/skill-exchange/internal/transport"
)

// multipartMemory is how much of an upload is buffered before spilling to disk.
const multipartMemory = 8 << 20

type ServiceAPI interface {
	Create(ctx context.Context, userID int64, dto CreateSkillDTO, filename string, video io.Reader) (*Listing, error)
	List(ctx context.Context) ([]*Listing, error)
	Get(ctx context.Context, id int64) (*Listing, error)
}

type Handler struct {
	*transport.BaseHandler
	Service        ServiceAPI
	MaxUploadBytes int64
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI, maxUploadBytes int64) *Handler {
	return &Handler{
		BaseHandler:    baseHandler,
		Service:        svc,
		MaxUploadBytes: maxUploadBytes,
	}
}

// CreateSkill handles POST /skills (multipart: title, description, video).
func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.CurrentUserID(w, r)
	if !ok {
		return
	}

	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.HandleError(w, r, internal.NewValidationFieldError("video", "upload exceeds the size limit", internal.ErrCodeUploadTooLarge))
			return
		}
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	dto := CreateSkillDTO{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	file, header, err := r.FormFile("video")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		h.WriteError(w, http.StatusBadRequest, "invalid video upload")
		return
	}

	var video io.Reader
	if file != nil {
		defer file.Close()
		video = file
	}

	listing, err := h.Service.Create(r.Context(), userID, dto, filename(header), video)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, listing)
}

// GetSkills handles GET /skills
func (h *Handler) GetSkills(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, SkillsResponse{Skills: listings})
}

// GetSkill handles GET /skills/{id}
func (h *Handler) GetSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := h.IDParam(w, r, "id")
	if !ok {
		return
	}

	listing, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, listing)
}

func filename(header *multipart.FileHeader) string {
	if header == nil {
		return ""
	}
	return header.Filename
}
