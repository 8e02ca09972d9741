package storage

import "context"

// ObjectStore is the object-storage surface the verification flow needs.
// Upload returns the stored path, which PublicURL resolves to a
// retrievable address.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key string, data []byte) (string, error)
	Delete(ctx context.Context, bucket, path string) error
	PublicURL(bucket, path string) string
}
