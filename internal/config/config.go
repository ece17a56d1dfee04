// Package config loads dt settings from a config file, DT_* environment
// variables, and command-line flags.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/thlib/go-timezone-local/tzlocal"

	"github.com/jparise/dt/internal/timeparse"
	"github.com/jparise/dt/internal/zoned"
)

// EnvPrefix prefixes every environment variable dt reads.
const EnvPrefix = "DT"

// Config holds all runtime configuration.
type Config struct {
	Timezone       string `mapstructure:"timezone"`
	OffsetConflict string `mapstructure:"offset_conflict"`
	Color          string `mapstructure:"color"`
	Jobs           int    `mapstructure:"jobs"`
	Debug          bool   `mapstructure:"debug"`
}

// Init points v at the config file and environment. cfgFile overrides the
// search path. A missing config file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		for _, dir := range searchPath() {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "reading config")
	}
	return nil
}

func searchPath() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "dt"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "dt"))
	}
	return dirs
}

// Load reads configuration from v, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load(v *viper.Viper) (Config, error) {
	v.SetDefault("timezone", "")
	v.SetDefault("offset_conflict", timeparse.PreferEmbeddedOffset.String())
	v.SetDefault("color", "auto")
	v.SetDefault("jobs", 10)
	v.SetDefault("debug", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that the decoder cannot.
func (c Config) Validate() error {
	if c.Jobs < 1 || c.Jobs > 100 {
		return errors.Errorf("jobs must be between 1 and 100, got %d", c.Jobs)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return errors.Errorf("color must be one of \"auto\", \"always\", or \"never\", got %q", c.Color)
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	return nil
}

// Policy returns the configured offset conflict policy.
func (c Config) Policy() (timeparse.Policy, error) {
	return timeparse.ParsePolicy(c.OffsetConflict)
}

// SystemZone returns the configured zone, else the zone of the machine,
// else UTC.
func (c Config) SystemZone() (zoned.Zone, error) {
	if c.Timezone != "" {
		z, err := zoned.LoadZone(c.Timezone)
		if err != nil {
			return zoned.Zone{}, errors.Wrap(err, "timezone")
		}
		return z, nil
	}

	name, err := tzlocal.RuntimeTZ()
	if err != nil {
		slog.Debug("falling back to UTC", "err", err)
		return zoned.UTC, nil
	}
	z, err := zoned.LoadZone(name)
	if err != nil {
		slog.Debug("falling back to UTC", "zone", name, "err", err)
		return zoned.UTC, nil
	}
	return z, nil
}
