package mocks

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/news-portal-api/internal/media"
)

// MockMediaStore is an in-memory media.Store
type MockMediaStore struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	SaveError error
	SaveCalls int
}

var _ media.Store = (*MockMediaStore)(nil)

func NewMockMediaStore() *MockMediaStore {
	return &MockMediaStore{Objects: make(map[string][]byte)}
}

func (m *MockMediaStore) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *MockMediaStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Objects[key]
	if !ok {
		return nil, media.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockMediaStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	return nil
}

func (m *MockMediaStore) URL(key string) string {
	return "/media/" + key
}

// Get returns the stored bytes for key
func (m *MockMediaStore) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Objects[key]
	return data, ok
}
