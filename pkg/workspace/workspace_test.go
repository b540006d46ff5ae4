package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWorkspace_Paths(t *testing.T) {
	w := &Workspace{
		RootPath:  "/test/md",
		CachePath: "/test/md/cache",
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"registry", w.RegistryPath(), "/test/md/cache/designer.json"},
		{"dataset", w.DatasetPath("0123456789abcdef"), "/test/md/cache/0123456789abcdef"},
		{"image", w.ImagePath("0123456789abcdef", "image_001.png"), "/test/md/cache/0123456789abcdef/image_001.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}

func TestNew_UsesXDGDirs(t *testing.T) {
	dataHome := t.TempDir()
	configHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", configHome)

	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if w.RootPath != filepath.Join(dataHome, "metadesigner") {
		t.Errorf("unexpected root: %s", w.RootPath)
	}
	if w.CachePath != filepath.Join(dataHome, "metadesigner", "cache") {
		t.Errorf("unexpected cache path: %s", w.CachePath)
	}
	if w.ConfigPath != filepath.Join(configHome, "metadesigner", "config.yaml") {
		t.Errorf("unexpected config path: %s", w.ConfigPath)
	}
}

func TestWorkspace_InitializeAndExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "md")
	w := &Workspace{RootPath: root, CachePath: filepath.Join(root, "cache")}

	if w.Exists() {
		t.Fatal("workspace should not exist yet")
	}
	if err := w.Initialize(); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if !w.Exists() {
		t.Fatal("workspace should exist after Initialize")
	}

	// Idempotent
	if err := w.Initialize(); err != nil {
		t.Fatalf("second Initialize() failed: %v", err)
	}
}

func TestWorkspace_WithCacheDir(t *testing.T) {
	w := &Workspace{CachePath: "/default/cache"}

	if err := w.WithCacheDir(""); err != nil {
		t.Fatal(err)
	}
	if w.CachePath != "/default/cache" {
		t.Error("empty dir must keep the default")
	}

	dir := t.TempDir()
	if err := w.WithCacheDir(dir); err != nil {
		t.Fatal(err)
	}
	if w.CachePath != dir {
		t.Errorf("expected %s, got %s", dir, w.CachePath)
	}

	if _, err := os.Stat(w.RegistryPath()); !os.IsNotExist(err) {
		t.Error("registry must not be created by WithCacheDir")
	}
}
