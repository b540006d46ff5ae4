package mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

// MockDatasetStore keeps dataset folders in memory
type MockDatasetStore struct {
	mu       sync.RWMutex
	datasets map[string]map[string][]byte
	failPut  int // fail the n-th Put call (1-based), 0 disables
	puts     int
	removed  []string
}

// NewMockDatasetStore creates an empty in-memory dataset store
func NewMockDatasetStore() *MockDatasetStore {
	return &MockDatasetStore{
		datasets: make(map[string]map[string][]byte),
	}
}

func (m *MockDatasetStore) Create(ctx context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.datasets[hash]; exists {
		return fmt.Errorf("dataset already exists: %s", hash)
	}
	m.datasets[hash] = make(map[string][]byte)
	return nil
}

func (m *MockDatasetStore) Put(ctx context.Context, hash string, filename string, src io.Reader) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.puts++
	if m.failPut > 0 && m.puts == m.failPut {
		return fmt.Errorf("write %s: no space left on device", filename)
	}

	files, ok := m.datasets[hash]
	if !ok {
		return fmt.Errorf("dataset not found: %s", hash)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, src); err != nil {
		return err
	}
	files[filename] = buf.Bytes()
	return nil
}

func (m *MockDatasetStore) Remove(ctx context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.datasets, hash)
	m.removed = append(m.removed, hash)
	return nil
}

func (m *MockDatasetStore) Exists(ctx context.Context, hash string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.datasets[hash]
	return ok
}

func (m *MockDatasetStore) List(ctx context.Context, hash string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files, ok := m.datasets[hash]
	if !ok {
		return nil, os.ErrNotExist
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MockDatasetStore) ListHashes(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hashes := make([]string, 0, len(m.datasets))
	for hash := range m.datasets {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)
	return hashes, nil
}

// File returns the stored bytes of one image
func (m *MockDatasetStore) File(hash, filename string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.datasets[hash][filename]
	return data, ok
}

// FailOnPut makes the n-th Put call (1-based) return an error
func (m *MockDatasetStore) FailOnPut(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPut = n
	m.puts = 0
}

// Removed returns the hashes passed to Remove
func (m *MockDatasetStore) Removed() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.removed...)
}
