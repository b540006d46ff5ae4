package ports

import (
	"context"
	"io"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
)

// RegistryStore defines the port for persisting the hash -> designer registry
type RegistryStore interface {
	// Load returns the persisted registry, or an empty one if none exists yet
	Load(ctx context.Context) (domain.Registry, error)

	// Save overwrites the persisted registry with the full mapping
	Save(ctx context.Context, registry domain.Registry) error
}

// DatasetStore defines the port for the per-designer image folders
type DatasetStore interface {
	// Create makes an empty dataset folder for hash
	Create(ctx context.Context, hash string) error

	// Put writes one image into an existing dataset folder
	Put(ctx context.Context, hash string, filename string, src io.Reader) error

	// Remove deletes a dataset folder and everything in it
	Remove(ctx context.Context, hash string) error

	// Exists checks if a dataset folder is present
	Exists(ctx context.Context, hash string) bool

	// List returns the file names inside a dataset folder, sorted
	List(ctx context.Context, hash string) ([]string, error)

	// ListHashes returns the names of all dataset folders, sorted
	ListHashes(ctx context.Context) ([]string, error)
}

// ImageSource is one uploaded image, either a local file or a multipart part
type ImageSource interface {
	// Name is the original file name; its extension is kept on copy
	Name() string

	// Open returns the image bytes
	Open() (io.ReadCloser, error)
}
