package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FSStore keeps objects as files under root/{bucket}/{key}, served back
// through a public base URL.
type FSStore struct {
	root    string
	baseURL string
}

func NewFSStore(root, baseURL string) *FSStore {
	return &FSStore{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *FSStore) Upload(ctx context.Context, bucket, key string, data []byte) (string, error) {
	full := filepath.Join(s.root, bucket, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}

	return key, nil
}

func (s *FSStore) Delete(ctx context.Context, bucket, path string) error {
	return os.Remove(filepath.Join(s.root, bucket, filepath.FromSlash(path)))
}

func (s *FSStore) PublicURL(bucket, path string) string {
	return s.baseURL + "/" + bucket + "/" + path
}
