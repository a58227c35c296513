package storage

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  string
	}{
		{"jpg accepted", "photo.jpg", 1024, ""},
		{"jpeg accepted", "photo.JPEG", 1024, ""},
		{"png accepted", "cover.png", MaxImageSize, ""},
		{"gif rejected", "anim.gif", 1024, "unsupported image format"},
		{"svg rejected", "vector.svg", 1024, "unsupported image format"},
		{"no extension rejected", "mystery", 1024, "unsupported image format"},
		{"too large rejected", "huge.png", MaxImageSize + 1, "image too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(&multipart.FileHeader{Filename: tt.filename, Size: tt.size})
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			"versioned url",
			"https://res.cloudinary.com/demo/image/upload/v1700000000/article_images/article_42.jpg",
			"article_images/article_42",
			false,
		},
		{
			"unversioned url",
			"https://res.cloudinary.com/demo/image/upload/article_images/cover.png",
			"article_images/cover",
			false,
		},
		{
			"not a delivery url",
			"https://example.com/images/cover.png",
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := publicIDFromURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
