package blobstorage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	storage_go "github.com/supabase-community/storage-go"
)

// ObjectPath builds the storage path for an uploaded media object:
// "{category}/{ownerId}/{uuid}_{index}.{ext}".
func ObjectPath(category, ownerID string, index int, ext string) string {
	return fmt.Sprintf("%s/%s/%s_%d.%s", category, ownerID, uuid.NewString(), index, ext)
}

// SupabaseConfig holds the Supabase Storage settings.
type SupabaseConfig struct {
	URL        string
	ServiceKey string
	Bucket     string
}

// SupabaseStorage implements ports.BlobStorage on Supabase Storage.
type SupabaseStorage struct {
	client *storage_go.Client
	bucket string
	logger *logrus.Logger
}

// NewSupabaseStorage creates a Supabase-backed blob store.
func NewSupabaseStorage(cfg *SupabaseConfig, logger *logrus.Logger) *SupabaseStorage {
	client := storage_go.NewClient(cfg.URL, cfg.ServiceKey, nil)
	return &SupabaseStorage{client: client, bucket: cfg.Bucket, logger: logger}
}

// Upload implements BlobStorage.Upload.
func (s *SupabaseStorage) Upload(_ context.Context, data []byte, path, contentType string) (string, error) {
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}
	resp := s.client.GetPublicUrl(s.bucket, path)
	s.logger.WithFields(logrus.Fields{"path": path, "bytes": len(data)}).Debug("blob uploaded")
	return resp.SignedURL, nil
}

var _ ports.BlobStorage = (*SupabaseStorage)(nil)
