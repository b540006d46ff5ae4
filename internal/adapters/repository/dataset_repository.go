package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/kamal-hamza/metadesigner/internal/core/ports"
	"github.com/kamal-hamza/metadesigner/pkg/workspace"
)

// FileDatasetStore keeps one folder per dataset hash under the cache directory
type FileDatasetStore struct {
	workspace *workspace.Workspace
}

// NewFileDatasetStore creates a dataset store rooted at the workspace cache
func NewFileDatasetStore(w *workspace.Workspace) *FileDatasetStore {
	return &FileDatasetStore{workspace: w}
}

var _ ports.DatasetStore = (*FileDatasetStore)(nil)

// Create makes the dataset folder. An existing folder is an error so a stale
// directory is never merged into a new dataset.
func (s *FileDatasetStore) Create(ctx context.Context, hash string) error {
	if err := os.MkdirAll(s.workspace.CachePath, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.Mkdir(s.workspace.DatasetPath(hash), 0755); err != nil {
		return fmt.Errorf("failed to create dataset folder: %w", err)
	}
	return nil
}

// Put copies src into the dataset folder under filename
func (s *FileDatasetStore) Put(ctx context.Context, hash string, filename string, src io.Reader) error {
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid image filename: %s", filename)
	}

	destPath := s.workspace.ImagePath(hash, filename)
	dst, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to copy %s: %w", filename, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filename, err)
	}
	return nil
}

// Remove deletes the dataset folder
func (s *FileDatasetStore) Remove(ctx context.Context, hash string) error {
	if hash == "" {
		return fmt.Errorf("refusing to remove cache root")
	}
	return os.RemoveAll(s.workspace.DatasetPath(hash))
}

// Exists checks if the dataset folder is present
func (s *FileDatasetStore) Exists(ctx context.Context, hash string) bool {
	info, err := os.Stat(s.workspace.DatasetPath(hash))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// List returns the files stored for hash
func (s *FileDatasetStore) List(ctx context.Context, hash string) ([]string, error) {
	entries, err := os.ReadDir(s.workspace.DatasetPath(hash))
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// ListHashes returns every folder under the cache directory
func (s *FileDatasetStore) ListHashes(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.workspace.CachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var hashes []string
	for _, entry := range entries {
		if entry.IsDir() {
			hashes = append(hashes, entry.Name())
		}
	}
	sort.Strings(hashes)
	return hashes, nil
}
