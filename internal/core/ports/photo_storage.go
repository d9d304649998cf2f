package ports

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrStorage = errors.New("photo storage failed")

	// ErrPhotoRejected is returned for unsupported content types, empty or
	// oversized photos. It is a client error, unlike plain ErrStorage.
	ErrPhotoRejected = fmt.Errorf("%w: photo rejected", ErrStorage)
)

// Photo is a decoded image as received from the driver.
type Photo struct {
	ContentType string
	Data        []byte
}

// PhotoStorage persists hiding-spot photos and returns their public URL.
type PhotoStorage interface {
	Save(ctx context.Context, photo Photo) (string, error)

	// Delete removes a photo previously returned by Save. Deleting an unknown
	// URL is not an error.
	Delete(ctx context.Context, url string) error
}
