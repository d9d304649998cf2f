// Package photostore keeps hiding-spot photos on the local filesystem and
// serves them under a public URL prefix.
package photostore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"lastmile/internal/core/ports"

	"github.com/google/uuid"
)

const (
	MaxPhotoBytes = 10 << 20

	hidingSpotsDir = "hiding-spots"
)

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

var _ ports.PhotoStorage = (*FileSystemStorage)(nil)

type FileSystemStorage struct {
	root         string
	publicPrefix string
}

// NewFileSystemStorage creates <root>/hiding-spots if needed. Saved photos are
// addressed as <publicPrefix>/hiding-spots/<name>.
func NewFileSystemStorage(root, publicPrefix string) (*FileSystemStorage, error) {
	if root == "" {
		return nil, errors.New("photo storage root is required")
	}
	if err := os.MkdirAll(filepath.Join(root, hidingSpotsDir), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrStorage, err)
	}
	return &FileSystemStorage{
		root:         root,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
	}, nil
}

func (s *FileSystemStorage) Save(ctx context.Context, photo ports.Photo) (string, error) {
	ext, err := validate(photo)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + "." + ext
	if err := os.WriteFile(filepath.Join(s.root, hidingSpotsDir, name), photo.Data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", ports.ErrStorage, err)
	}
	return path.Join(s.publicPrefix, hidingSpotsDir, name), nil
}

func (s *FileSystemStorage) Delete(_ context.Context, url string) error {
	p, err := s.localPath(url)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ports.ErrStorage, err)
	}
	return nil
}

// Open returns the content of a photo previously returned by Save.
func (s *FileSystemStorage) Open(url string) (io.ReadCloser, error) {
	p, err := s.localPath(url)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrStorage, err)
	}
	return f, nil
}

func (s *FileSystemStorage) localPath(url string) (string, error) {
	prefix := path.Join(s.publicPrefix, hidingSpotsDir) + "/"
	name, ok := strings.CutPrefix(url, prefix)
	if !ok || name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: unknown photo url %q", ports.ErrStorage, url)
	}
	return filepath.Join(s.root, hidingSpotsDir, name), nil
}

func validate(photo ports.Photo) (string, error) {
	contentType := strings.ToLower(strings.TrimSpace(photo.ContentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported content type %q", ports.ErrPhotoRejected, photo.ContentType)
	}
	if len(photo.Data) == 0 {
		return "", fmt.Errorf("%w: empty photo", ports.ErrPhotoRejected)
	}
	if len(photo.Data) > MaxPhotoBytes {
		return "", fmt.Errorf("%w: photo exceeds %d bytes", ports.ErrPhotoRejected, MaxPhotoBytes)
	}
	if sniffed := http.DetectContentType(photo.Data); !strings.HasPrefix(sniffed, "image/") {
		return "", fmt.Errorf("%w: content is %s", ports.ErrPhotoRejected, sniffed)
	}
	return ext, nil
}
