// Package storage provides S3-compatible object storage for car photos.
package storage

import (
	"context"
	"io"
	"time"
)

// PresignedURL contains the URL and metadata for a presigned upload/download operation.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ImageStore defines the object storage operations the fleet module needs.
type ImageStore interface {
	// GenerateUploadURL creates a presigned URL for uploading an image.
	// The folder parameter is the car id prefix under the bucket.
	GenerateUploadURL(ctx context.Context, folder, fileName, contentType string, sizeBytes int64) (*PresignedURL, error)

	// PublicURL returns the canonical URL for a stored object.
	PublicURL(fileKey string) string

	// DeleteObject removes an object from storage.
	DeleteObject(ctx context.Context, fileKey string) error

	// UploadFile uploads an image directly from an io.Reader and returns the file key.
	UploadFile(ctx context.Context, folder, fileName, contentType string, reader io.Reader, size int64) (string, error)

	// EnsureBucketExists creates the bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context) error
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketCarImages() string
}
