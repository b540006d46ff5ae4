package services

import (
	"io"
	"os"
	"path/filepath"

	"github.com/kamal-hamza/metadesigner/internal/core/ports"
)

// FileImage is an image read from the local filesystem
type FileImage struct {
	Path string
}

// NewFileImages wraps local paths as image sources
func NewFileImages(paths []string) []ports.ImageSource {
	images := make([]ports.ImageSource, 0, len(paths))
	for _, p := range paths {
		images = append(images, FileImage{Path: p})
	}
	return images
}

func (f FileImage) Name() string {
	return filepath.Base(f.Path)
}

func (f FileImage) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}
