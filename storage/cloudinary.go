package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"blog-backend/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore persists featured images in Cloudinary. Article rows keep
// the secure URL returned by Upload.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// InitCloudinary builds the Cloudinary-backed store from the environment
// and installs it as the Default store.
func InitCloudinary() error {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return fmt.Errorf("the Cloudinary environment variables are not set")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return fmt.Errorf("error initializing Cloudinary: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := cld.Admin.Ping(ctx); err != nil {
		return fmt.Errorf("error checking the Cloudinary connection: %v", err)
	}

	Default = &CloudinaryStore{cld: cld}
	utils.LogSuccess("Cloudinary initialized and connection verified")
	return nil
}

func boolPointer(b bool) *bool {
	return &b
}

// Upload validates the file and sends it to Cloudinary. The returned secure
// URL is what article rows reference.
func (s *CloudinaryStore) Upload(file *multipart.FileHeader, folder string) (string, error) {
	if err := ValidateImage(file); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening the file: %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("article_%d", time.Now().UnixNano())

	uploadResult, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:         folder,
		PublicID:       publicID,
		UseFilename:    boolPointer(true),
		UniqueFilename: boolPointer(true),
		Overwrite:      boolPointer(false),
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("error uploading to Cloudinary: %v", err)
	}

	if uploadResult.SecureURL == "" {
		return "", fmt.Errorf("empty secure URL in the Cloudinary response")
	}

	return uploadResult.SecureURL, nil
}

// Delete removes the blob behind a URL previously returned by Upload.
func (s *CloudinaryStore) Delete(imageURL string) error {
	publicID, err := publicIDFromURL(imageURL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err = s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("error deleting from Cloudinary: %v", err)
	}
	return nil
}

// Exists reports whether the blob behind the URL is still stored.
func (s *CloudinaryStore) Exists(imageURL string) (bool, error) {
	publicID, err := publicIDFromURL(imageURL)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	asset, err := s.cld.Admin.Asset(ctx, admin.AssetParams{PublicID: publicID})
	if err != nil {
		return false, err
	}
	return asset.PublicID != "", nil
}

// publicIDFromURL recovers the Cloudinary public id from a secure URL:
// everything after the /upload/ segment, minus the version prefix and the
// file extension.
func publicIDFromURL(imageURL string) (string, error) {
	_, after, found := strings.Cut(imageURL, "/upload/")
	if !found {
		return "", fmt.Errorf("not a Cloudinary delivery URL: %s", imageURL)
	}

	parts := strings.Split(after, "/")
	if len(parts) > 1 && strings.HasPrefix(parts[0], "v") {
		parts = parts[1:]
	}

	publicID := strings.Join(parts, "/")
	if dot := strings.LastIndex(publicID, "."); dot > 0 {
		publicID = publicID[:dot]
	}
	if publicID == "" {
		return "", fmt.Errorf("could not extract a public id from %s", imageURL)
	}
	return publicID, nil
}
