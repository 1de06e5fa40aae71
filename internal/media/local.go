package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// LocalStore keeps videos in a single flat directory.
type LocalStore struct {
	fs afero.Fs
}

// NewLocalStore roots the store at dir, creating it if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, errors.New("media: local dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create %s: %w", dir, err)
	}
	return NewLocalStoreFs(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// NewLocalStoreFs wraps an existing filesystem, e.g. afero.NewMemMapFs in tests.
func NewLocalStoreFs(fsys afero.Fs) *LocalStore {
	return &LocalStore{fs: fsys}
}

func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	ref := NewReference(filename)
	tmp := ref + ".part"

	f, err := s.fs.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("media: create %s: %w", tmp, err)
	}

	_, copyErr := io.Copy(f, contextReader{ctx: ctx, r: r})
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = s.fs.Remove(tmp)
		if copyErr != nil {
			return "", fmt.Errorf("media: write %s: %w", ref, copyErr)
		}
		return "", fmt.Errorf("media: close %s: %w", ref, closeErr)
	}

	if err := s.fs.Rename(tmp, ref); err != nil {
		_ = s.fs.Remove(tmp)
		return "", fmt.Errorf("media: commit %s: %w", ref, err)
	}
	return ref, nil
}

func (s *LocalStore) Open(_ context.Context, ref string) (*Object, error) {
	if err := validateReference(ref); err != nil {
		return nil, err
	}

	f, err := s.fs.Open(ref)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("media: open %s: %w", ref, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("media: stat %s: %w", ref, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, ErrNotFound
	}

	return &Object{
		Body:        f,
		Size:        info.Size(),
		ContentType: ContentTypeFor(ref),
		ModTime:     info.ModTime(),
	}, nil
}

func (s *LocalStore) Delete(_ context.Context, ref string) error {
	if err := validateReference(ref); err != nil {
		return err
	}
	if err := s.fs.Remove(ref); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("media: delete %s: %w", ref, err)
	}
	return nil
}

func (s *LocalStore) Ping(_ context.Context) error {
	_, err := s.fs.Stat(".")
	return err
}

// contextReader stops a copy once ctx is done, so abandoned uploads do not
// keep writing.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
