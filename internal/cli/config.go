package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional on-disk configuration. Flags override config,
// config overrides defaults.
type Config struct {
	// DB is the SQLite database path.
	DB string `yaml:"db"`

	// Variant names the rule set to play.
	Variant string `yaml:"variant"`

	// VariantsDir points at extra .cue variant definitions.
	VariantsDir string `yaml:"variants_dir"`
}

// LoadConfig reads the config file at path, or the default location when
// path is empty. A missing file is not an error, since everything has a
// default, but a present-and-broken file is.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigPath is ~/.config/twentyeight/config.yaml (per-OS).
func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "twentyeight", "config.yaml"), nil
}

// defaultDBPath is ~/.config/twentyeight/twentyeight.db (per-OS). The
// store creates missing directories on open.
func defaultDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "twentyeight", "twentyeight.db"), nil
}
