package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore is an in-memory ObjectStore used by tests. FailWhenContains
// makes uploads whose key contains the substring fail.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	uploads []string
	deletes []string

	FailWhenContains string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Upload(ctx context.Context, bucket, key string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploads = append(s.uploads, key)
	if s.FailWhenContains != "" && strings.Contains(key, s.FailWhenContains) {
		return "", fmt.Errorf("upload %s: storage unavailable", key)
	}
	s.objects[bucket+"/"+key] = append([]byte(nil), data...)
	return key, nil
}

func (s *MemoryStore) Delete(ctx context.Context, bucket, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletes = append(s.deletes, path)
	delete(s.objects, bucket+"/"+path)
	return nil
}

func (s *MemoryStore) PublicURL(bucket, path string) string {
	return "mem://" + bucket + "/" + path
}

// ObjectCount reports how many objects are currently stored.
func (s *MemoryStore) ObjectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// UploadCalls returns the keys passed to Upload, in order.
func (s *MemoryStore) UploadCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.uploads...)
}

// DeleteCalls returns the paths passed to Delete, in order.
func (s *MemoryStore) DeleteCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletes...)
}
