package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.Host != "0.0.0.0" {
		t.Errorf("expected default Host='0.0.0.0', got %q", cfg.Host)
	}

	if cfg.Port != 12002 {
		t.Errorf("expected default Port=12002, got %d", cfg.Port)
	}

	if cfg.TolerateCorruptRegistry {
		t.Error("corrupt registries must be reported by default")
	}

	if cfg.Addr() != "0.0.0.0:12002" {
		t.Errorf("unexpected Addr(): %s", cfg.Addr())
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")

	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}

	if cfg.Port != 12002 {
		t.Errorf("expected default Port=12002, got %d", cfg.Port)
	}
}

func TestSave_And_Load(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 8080
	cfg.CacheDir = "/srv/datasets"
	cfg.TolerateCorruptRegistry = true
	cfg.CORSOrigins = []string{"http://localhost:3000"}

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Host != cfg.Host || loaded.Port != cfg.Port {
		t.Errorf("address mismatch: got %s", loaded.Addr())
	}
	if loaded.CacheDir != cfg.CacheDir {
		t.Errorf("CacheDir: expected %q, got %q", cfg.CacheDir, loaded.CacheDir)
	}
	if !loaded.TolerateCorruptRegistry {
		t.Error("TolerateCorruptRegistry was not persisted")
	}
	if len(loaded.CORSOrigins) != 1 || loaded.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("CORSOrigins: got %v", loaded.CORSOrigins)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `cache_dir: /data/cache
port: 0
log_level: verbose
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.CacheDir != "/data/cache" {
		t.Errorf("expected cache_dir from file, got %q", cfg.CacheDir)
	}
	if cfg.Port != 12002 {
		t.Errorf("expected Port to fall back to 12002, got %d", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected invalid log level to fall back to info, got %q", cfg.LogLevel)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("port: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestOverlay_EnvOverridesFile(t *testing.T) {
	t.Setenv("METADESIGNER_PORT", "9090")
	t.Setenv("METADESIGNER_TOLERATE_CORRUPT_REGISTRY", "true")

	cfg := DefaultConfig()
	cfg.CacheDir = "/from/file"

	if err := cfg.Overlay(viper.New()); err != nil {
		t.Fatalf("Overlay() failed: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("expected env port 9090, got %d", cfg.Port)
	}
	if !cfg.TolerateCorruptRegistry {
		t.Error("expected env to enable tolerate_corrupt_registry")
	}
	if cfg.CacheDir != "/from/file" {
		t.Errorf("file value should survive, got %q", cfg.CacheDir)
	}
}

func TestOverlay_ChangedFlagWins(t *testing.T) {
	t.Setenv("METADESIGNER_HOST", "10.0.0.1")

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("host", "", "")
	flags.Int("port", 0, "")
	if err := flags.Parse([]string{"--host", "127.0.0.1"}); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	if err := v.BindPFlag("host", flags.Lookup("host")); err != nil {
		t.Fatal(err)
	}
	if err := v.BindPFlag("port", flags.Lookup("port")); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.Overlay(v); err != nil {
		t.Fatalf("Overlay() failed: %v", err)
	}

	if cfg.Host != "127.0.0.1" {
		t.Errorf("expected flag host, got %q", cfg.Host)
	}
	if cfg.Port != 12002 {
		t.Errorf("unchanged flag must not override port, got %d", cfg.Port)
	}
}
