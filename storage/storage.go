package storage

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
)

// MaxImageSize is the largest featured image accepted, in bytes.
const MaxImageSize = 2 * 1024 * 1024

// ImageStore is the blob store the article handlers persist featured images
// through. Upload returns the stable URL the article row references.
type ImageStore interface {
	Upload(file *multipart.FileHeader, folder string) (string, error)
	Delete(imageURL string) error
	Exists(imageURL string) (bool, error)
}

// Default is the store the handlers use. Tests swap it for a stub, the same
// way testutils swaps db.DB. It stays nil when InitCloudinary fails, so
// callers must check before dereferencing.
var Default ImageStore

// ErrNotConfigured is returned when no image store has been initialized.
var ErrNotConfigured = errors.New("image store not configured")

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png"}

// ValidateImage rejects anything that is not a jpeg/jpg/png of at most 2MB.
// Runs before any byte is sent to the store.
func ValidateImage(file *multipart.FileHeader) error {
	if file.Size > MaxImageSize {
		return fmt.Errorf("image too large: maximum size is 2MB")
	}

	lowerName := strings.ToLower(file.Filename)
	for _, ext := range allowedImageExtensions {
		if strings.HasSuffix(lowerName, ext) {
			return nil
		}
	}
	return fmt.Errorf("unsupported image format: use JPG, JPEG or PNG")
}
