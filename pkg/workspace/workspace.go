package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
)

const appName = "metadesigner"

// Workspace represents the managed storage directories for metadesigner
type Workspace struct {
	RootPath   string
	CachePath  string
	ConfigPath string
}

// New creates a new Workspace instance with XDG-compliant paths
func New() (*Workspace, error) {
	rootPath, rootErr := getDataRoot()
	configPath, configErr := getConfigPath()
	if rootErr != nil {
		return nil, fmt.Errorf("failed to determine workspace root: %w", rootErr)
	}
	if configErr != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", configErr)
	}

	return &Workspace{
		RootPath:   rootPath,
		CachePath:  filepath.Join(rootPath, "cache"),
		ConfigPath: configPath,
	}, nil
}

// WithCacheDir points the workspace at an explicit cache directory
func (w *Workspace) WithCacheDir(dir string) error {
	if dir == "" {
		return nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve cache dir %s: %w", dir, err)
	}
	w.CachePath = abs
	return nil
}

// getDataRoot follows the XDG Base Directory specification on Unix and uses AppData on Windows
func getDataRoot() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName), nil
	}

	return filepath.Join(homeDir, ".local", "share", appName), nil
}

func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName+"-config", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// Initialize creates the workspace directory structure if it doesn't exist
func (w *Workspace) Initialize() error {
	for _, dir := range []string{w.RootPath, w.CachePath} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Exists checks if the cache directory has been created
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.CachePath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// RegistryPath returns the path to the designer registry file
func (w *Workspace) RegistryPath() string {
	return filepath.Join(w.CachePath, domain.RegistryFilename)
}

// DatasetPath returns the folder holding one designer's images
func (w *Workspace) DatasetPath(hash string) string {
	return filepath.Join(w.CachePath, hash)
}

// ImagePath returns the full path of one stored image
func (w *Workspace) ImagePath(hash, filename string) string {
	return filepath.Join(w.CachePath, hash, filename)
}
