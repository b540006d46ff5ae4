package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
)

// MockRegistryStore is an in-memory implementation of ports.RegistryStore
type MockRegistryStore struct {
	mu         sync.RWMutex
	registry   domain.Registry
	saves      int
	loadError  error
	saveError  error
	shouldFail bool
}

// NewMockRegistryStore creates an empty in-memory registry
func NewMockRegistryStore() *MockRegistryStore {
	return &MockRegistryStore{
		registry: domain.NewRegistry(),
	}
}

// Load returns a copy of the stored registry
func (m *MockRegistryStore) Load(ctx context.Context) (domain.Registry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.loadError != nil {
		return nil, m.loadError
	}
	return m.registry.Clone(), nil
}

// Save replaces the stored registry
func (m *MockRegistryStore) Save(ctx context.Context, registry domain.Registry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shouldFail {
		if m.saveError != nil {
			return m.saveError
		}
		return fmt.Errorf("registry save failed")
	}
	m.registry = registry.Clone()
	m.saves++
	return nil
}

// Seed inserts an entry without counting it as a save
func (m *MockRegistryStore) Seed(hash, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registry[hash] = name
}

// Snapshot returns a copy of the current registry
func (m *MockRegistryStore) Snapshot() domain.Registry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.registry.Clone()
}

// SaveCount returns how many successful saves happened
func (m *MockRegistryStore) SaveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// SetLoadError makes every Load fail with err
func (m *MockRegistryStore) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadError = err
}

// SetShouldFail makes Save fail
func (m *MockRegistryStore) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = fail
	m.saveError = err
}
