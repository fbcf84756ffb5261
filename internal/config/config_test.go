package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Player != "mpv" {
		t.Errorf("default player = %q, want mpv", cfg.Player)
	}
	if cfg.Base != "phimapi.com" {
		t.Errorf("default base = %q, want phimapi.com", cfg.Base)
	}
	if cfg.Store != "sqlite" {
		t.Errorf("default store = %q, want sqlite", cfg.Store)
	}
	if cfg.Limit != 24 {
		t.Errorf("default limit = %d, want 24", cfg.Limit)
	}
	if !cfg.History {
		t.Error("default history should be true")
	}
	if cfg.MaxRecent != 10 || cfg.MaxFavorites != 100 {
		t.Errorf("default caps = %d/%d, want 10/100", cfg.MaxRecent, cfg.MaxFavorites)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"invalid player", func(c *Config) { c.Player = "notepad" }, true},
		{"invalid store", func(c *Config) { c.Store = "redis" }, true},
		{"empty base", func(c *Config) { c.Base = "" }, true},
		{"limit too small", func(c *Config) { c.Limit = 0 }, true},
		{"limit too big", func(c *Config) { c.Limit = 120 }, true},
		{"valid vlc", func(c *Config) { c.Player = "vlc" }, false},
		{"valid file store", func(c *Config) { c.Store = "file" }, false},
		{"valid limit 60", func(c *Config) { c.Limit = 60 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()

	content := `
base = "example.com"
player = "vlc"
store = "file"
limit = 36
history = false
`
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	appDir := filepath.Join(tmpDir, "vphim")
	os.MkdirAll(appDir, 0755)
	if err := os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Base != "example.com" {
		t.Errorf("base = %q, want example.com", cfg.Base)
	}
	if cfg.Player != "vlc" {
		t.Errorf("player = %q, want vlc", cfg.Player)
	}
	if cfg.Store != "file" {
		t.Errorf("store = %q, want file", cfg.Store)
	}
	if cfg.Limit != 36 {
		t.Errorf("limit = %d, want 36", cfg.Limit)
	}
	if cfg.History {
		t.Error("history should be false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Player != "mpv" {
		t.Errorf("missing file should return defaults, got player = %q", cfg.Player)
	}
}

func TestExpandDownloadDir(t *testing.T) {
	cfg := Default()
	cfg.DownloadDir = "/tmp/test-downloads"

	dir, err := cfg.ExpandDownloadDir()
	if err != nil {
		t.Fatalf("ExpandDownloadDir() error: %v", err)
	}
	if dir != "/tmp/test-downloads" {
		t.Errorf("got %q, want /tmp/test-downloads", dir)
	}
}

func TestStatePath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	cfg := Default()
	path, err := cfg.StatePath()
	if err != nil {
		t.Fatalf("StatePath() error: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("vphim", "state.db")) {
		t.Errorf("sqlite state path = %q, want .../vphim/state.db", path)
	}

	cfg.Store = "file"
	path, err = cfg.StatePath()
	if err != nil {
		t.Fatalf("StatePath() error: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("vphim", "state.json")) {
		t.Errorf("file state path = %q, want .../vphim/state.json", path)
	}
}
