package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/filecms/filecms/internal/document"
)

// MemoryRepo is an in-memory repository used by unit tests and for running
// the CMS without a writable disk.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string][]byte
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string][]byte)}
}

func (m *MemoryRepo) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.store))
	for name := range m.store {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryRepo) Read(ctx context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.store[name]; ok {
		return append([]byte(nil), b...), nil
	}
	return nil, document.ErrNotFound
}

func (m *MemoryRepo) Write(ctx context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[name] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryRepo) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[name]; !ok {
		return document.ErrNotFound
	}
	delete(m.store, name)
	return nil
}
