// Package config loads the settings of the command line tool from an
// optional YAML, JSON or TOML file and from VDF_* environment variables.
package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"github.com/vdftool/vdf/internal/log"
	"github.com/vdftool/vdf/internal/steam"
)

// EnvPrefix is the prefix of the environment variables overriding the
// configuration, e.g. VDF_STEAM_ROOT for steam.root.
const EnvPrefix = "VDF"

// Config holds every setting.
type Config struct {
	Steam  SteamConfig  `mapstructure:"steam"`
	Log    log.Config   `mapstructure:"log"`
	Backup BackupConfig `mapstructure:"backup"`
	Grid   GridConfig   `mapstructure:"grid"`
}

type SteamConfig struct {
	Root string `mapstructure:"root"`
	// User is the userdata account id. It may be left empty when a single
	// account exists.
	User string `mapstructure:"user"`
}

type BackupConfig struct {
	// Dir is the directory of the snapshot store.
	// Defaults to .vdf-backups under the Steam root.
	Dir string `mapstructure:"dir"`
	// Keep is the number of snapshots kept per file. Zero keeps everything.
	Keep int `mapstructure:"keep"`
}

type GridConfig struct {
	Workers int           `mapstructure:"workers"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("steam.root", steam.DefaultRoot())
	v.SetDefault("steam.user", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max-size", 10)
	v.SetDefault("log.max-backups", 3)
	v.SetDefault("backup.dir", "")
	v.SetDefault("backup.keep", 20)
	v.SetDefault("grid.workers", 4)
	v.SetDefault("grid.timeout", 30*time.Second)
}

// Load reads the configuration file at path, if not empty, and applies the
// environment on top of it. The file type is inferred from the extension.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		switch ext := filepath.Ext(path); ext {
		case ".yaml", ".yml":
			v.SetConfigType("yaml")
		case ".json":
			v.SetConfigType("json")
		case ".toml":
			v.SetConfigType("toml")
		}

		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %q", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values that can't be fixed up later.
func (c *Config) Validate() error {
	if c.Grid.Workers < 1 {
		return errors.Newf("grid.workers must be positive, got %d", c.Grid.Workers)
	}
	if c.Grid.Timeout < 0 {
		return errors.Newf("grid.timeout must not be negative, got %s", c.Grid.Timeout)
	}
	if c.Backup.Keep < 0 {
		return errors.Newf("backup.keep must not be negative, got %d", c.Backup.Keep)
	}

	return nil
}

// BackupDir returns the directory of the snapshot store.
func (c *Config) BackupDir() string {
	if c.Backup.Dir != "" {
		return c.Backup.Dir
	}

	return filepath.Join(c.Steam.Root, ".vdf-backups")
}
