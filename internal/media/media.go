package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
	"github.com/google/uuid"
)

const defaultContentType = "application/octet-stream"

// videoTypes covers containers missing from the platform mime tables.
var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".ogv":  "video/ogg",
}

var (
	ErrNotFound         = errors.New("media: object not found")
	ErrInvalidReference = errors.New("media: invalid reference")
)

// Object is an opened video. Body implements io.ReadSeeker when the backend
// supports random access, which lets the handler answer Range requests.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
	ModTime     time.Time
}

// Store persists uploaded videos under opaque references.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Open(ctx context.Context, ref string) (*Object, error)
	Delete(ctx context.Context, ref string) error
	Ping(ctx context.Context) error
}

// NewStore builds the backend selected by cfg.Backend.
func NewStore(ctx context.Context, cfg internal.MediaConfig) (Store, error) {
	switch cfg.Backend {
	case internal.MediaBackendLocal, "":
		return NewLocalStore(cfg.LocalDir)
	case internal.MediaBackendS3:
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("media: unknown backend %q", cfg.Backend)
	}
}

// NewReference returns a collision free object name that keeps the
// extension of the uploaded file, so the content type survives.
func NewReference(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !validExtension(ext) {
		ext = ""
	}
	return uuid.NewString() + ext
}

// ContentTypeFor guesses the content type of ref from its extension.
func ContentTypeFor(ref string) string {
	ext := strings.ToLower(filepath.Ext(ref))
	if ct, ok := videoTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return defaultContentType
}

func validExtension(ext string) bool {
	if len(ext) < 2 || len(ext) > 6 {
		return false
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

func validateReference(ref string) error {
	if ref == "" || ref == "." || ref == ".." || strings.ContainsAny(ref, `/\`) {
		return ErrInvalidReference
	}
	return nil
}
