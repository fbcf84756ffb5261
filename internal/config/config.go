// Package config handles TOML-based configuration loading and
// validation. TOML is parsed as data only — no code execution is
// possible.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	Base         string `toml:"base"`
	Player       string `toml:"player"`
	Store        string `toml:"store"`
	Limit        int    `toml:"limit"`
	History      bool   `toml:"history"`
	DownloadDir  string `toml:"download_dir"`
	MaxProgress  int    `toml:"max_progress"`
	MaxRecent    int    `toml:"max_recent"`
	MaxFavorites int    `toml:"max_favorites"`
	Debug        bool   `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Base:         "phimapi.com",
		Player:       "mpv",
		Store:        "sqlite",
		Limit:        24,
		History:      true,
		DownloadDir:  "~/Videos/vphim",
		MaxProgress:  500,
		MaxRecent:    10,
		MaxFavorites: 100,
		Debug:        false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vphim"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vphim"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	validStores := map[string]bool{
		"sqlite": true, "file": true,
	}
	if !validStores[strings.ToLower(c.Store)] {
		return fmt.Errorf("unsupported store %q (valid: sqlite, file)", c.Store)
	}

	if c.Base == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	if c.Limit < 1 || c.Limit > 60 {
		return fmt.Errorf("limit %d out of range (1-60)", c.Limit)
	}

	return nil
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	dir := c.DownloadDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}

// dataDir returns the XDG-compliant data directory.
func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "vphim"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "vphim"), nil
}

// StatePath returns the path of the persisted state for the configured
// store backend.
func (c *Config) StatePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	if strings.ToLower(c.Store) == "file" {
		return filepath.Join(dir, "state.json"), nil
	}
	return filepath.Join(dir, "state.db"), nil
}
