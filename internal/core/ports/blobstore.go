package ports

import "context"

// BlobStorage stores opaque media bytes at a path and returns a public URL.
// Paths follow "{category}/{ownerId}/{uuid}_{index}.{ext}"; see
// blobstorage.ObjectPath.
type BlobStorage interface {
	Upload(ctx context.Context, data []byte, path string, contentType string) (string, error)
}
