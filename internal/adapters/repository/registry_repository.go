package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
	"github.com/kamal-hamza/metadesigner/internal/core/ports"
	"github.com/kamal-hamza/metadesigner/internal/observability"
)

// FileRegistryStore keeps the registry as one pretty-printed JSON object
type FileRegistryStore struct {
	path            string
	tolerateCorrupt bool
	logger          *slog.Logger
	mu              sync.RWMutex
}

// RegistryOption customizes a FileRegistryStore
type RegistryOption func(*FileRegistryStore)

// WithTolerateCorrupt makes an unparsable file load as an empty registry
func WithTolerateCorrupt(tolerate bool) RegistryOption {
	return func(r *FileRegistryStore) {
		r.tolerateCorrupt = tolerate
	}
}

// WithLogger sets the logger used for corruption warnings
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *FileRegistryStore) {
		r.logger = logger
	}
}

// NewFileRegistryStore creates a registry store backed by path
func NewFileRegistryStore(path string, opts ...RegistryOption) *FileRegistryStore {
	r := &FileRegistryStore{path: path}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = observability.OrDiscard(r.logger)
	return r
}

var _ ports.RegistryStore = (*FileRegistryStore)(nil)

// Path returns the registry file location
func (r *FileRegistryStore) Path() string {
	return r.path
}

// Load reads the registry from disk
func (r *FileRegistryStore) Load(ctx context.Context) (domain.Registry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewRegistry(), nil
		}
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	registry := domain.NewRegistry()
	if err := json.Unmarshal(data, &registry); err != nil {
		if r.tolerateCorrupt {
			r.logger.Warn("registry unreadable, treating as empty", "path", r.path, "error", err)
			return domain.NewRegistry(), nil
		}
		return nil, domain.NewRegistryCorrupt(r.path, err)
	}
	if registry == nil {
		// a literal "null" document
		registry = domain.NewRegistry()
	}

	return registry, nil
}

// Save overwrites the registry file with the full mapping
func (r *FileRegistryStore) Save(ctx context.Context, registry domain.Registry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := encodeRegistry(registry)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".designer-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp registry: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write registry: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace registry: %w", err)
	}
	return nil
}

// encodeRegistry renders the registry with 2-space indent, keeping non-ASCII and HTML characters as-is
func encodeRegistry(registry domain.Registry) ([]byte, error) {
	if registry == nil {
		registry = domain.NewRegistry()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(registry); err != nil {
		return nil, fmt.Errorf("failed to encode registry: %w", err)
	}
	return buf.Bytes(), nil
}
