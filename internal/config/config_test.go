package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Error("Exists() = true with no file")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Treasury.Fiat = 1_250_000
	cfg.Export.DefaultFormat = "csv"
	cfg.Logging.Level = "debug"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("Load = %+v, want %+v", got, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := os.MkdirAll(filepath.Join(dir, "runway"), 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte("[treasury]\nfiat = 100000\n")
	if err := os.WriteFile(filepath.Join(dir, "runway", "config.toml"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Treasury.Fiat != 100000 {
		t.Errorf("Fiat = %.0f, want 100000", cfg.Treasury.Fiat)
	}
	if cfg.Treasury.Tokens != 15_000_000 || cfg.Appearance.Theme != "flexoki-dark" || cfg.Export.DelayMS != 2000 {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	_ = os.MkdirAll(filepath.Join(dir, "runway"), 0o755)
	_ = os.WriteFile(filepath.Join(dir, "runway", "config.toml"), []byte("[treasury\n"), 0o600)

	if _, err := Load(); err == nil {
		t.Error("Load of malformed TOML returned nil error")
	}
}

func TestCacheDir_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	if got := CacheDir(); got != filepath.Join(dir, "runway") {
		t.Errorf("CacheDir = %q", got)
	}
}
