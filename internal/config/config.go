package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskpad.db"
	DefaultTitleWidth     = 40
)

type Config struct {
	DBPath        string `toml:"db_path"`
	TitleWidth    int    `toml:"title_width"`
	DefaultSearch string `toml:"default_search"`
}

// ResolveConfigPath prefers the user config dir and falls back to the
// working directory when it cannot be determined.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "taskpad", DefaultConfigFileName)
}

// LoadOrCreate reads the config, writing one with defaults on first launch.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	// Unmarshal over the defaults: an absent key keeps its default, while
	// an explicit empty db_path stays empty and disables persistence.
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.TitleWidth <= 0 {
		cfg.TitleWidth = DefaultTitleWidth
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:        DefaultDBName,
		TitleWidth:    DefaultTitleWidth,
		DefaultSearch: "",
	}
}
