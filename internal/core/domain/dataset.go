package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxImages is the upper bound of images accepted per designer
const MaxImages = 30

// DefaultImageExt is used when an uploaded file name carries no extension
const DefaultImageExt = ".jpg"

// RegistryFilename is the name of the registry document inside the cache
const RegistryFilename = "designer.json"

// NormalizeName trims surrounding whitespace from a designer name
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ImageFilename returns the stored name of the i-th image (1-based).
// "a.png", 1 -> "image_001.png"; "scan", 2 -> "image_002.jpg"
func ImageFilename(index int, sourceName string) string {
	ext := filepath.Ext(sourceName)
	if ext == "" || ext == "." {
		ext = DefaultImageExt
	}
	return fmt.Sprintf("image_%03d%s", index, ext)
}

// ValidateUpload checks a registration request in order, stopping at the first failure.
// The duplicate-name check needs the registry and is done by the caller.
func ValidateUpload(name string, imageCount int) error {
	trimmed := NormalizeName(name)
	if trimmed == "" {
		return newError(KindEmptyName, trimmed, "", nil)
	}
	if imageCount == 0 {
		return newError(KindNoImages, trimmed, "", nil)
	}
	if imageCount > MaxImages {
		return newError(KindTooManyImages, trimmed, fmt.Sprintf("%d", imageCount), nil)
	}
	return nil
}
