package testutil

import (
	"context"
	"fmt"
	"sync"

	"art-inventory/internal/store"
)

// MemObjectStore is an in-memory store.ObjectStore that counts uploads and
// can be told to fail specific filenames.
type MemObjectStore struct {
	mu       sync.Mutex
	seq      int
	Objects  map[string][]byte
	Uploads  int
	Deletes  int
	FailName map[string]bool
}

func NewMemObjectStore() *MemObjectStore {
	return &MemObjectStore{
		Objects:  make(map[string][]byte),
		FailName: make(map[string]bool),
	}
}

func (m *MemObjectStore) Upload(_ context.Context, data []byte, filename, _ string) (store.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if int64(len(data)) > store.MaxObjectSize {
		return store.ObjectInfo{}, store.ErrPayloadTooLarge
	}
	if m.FailName[filename] {
		return store.ObjectInfo{}, fmt.Errorf("simulated upload failure for %s", filename)
	}

	m.Uploads++
	m.seq++
	key := fmt.Sprintf("obj-%d", m.seq)
	m.Objects[key] = data
	return store.ObjectInfo{Key: key, URL: "mem://" + key}, nil
}

func (m *MemObjectStore) Delete(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	delete(m.Objects, key)
}

func (m *MemObjectStore) URL(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Objects[key]; !ok {
		return "", store.ErrNotFound
	}
	return "mem://" + key, nil
}
