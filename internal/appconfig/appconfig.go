// Package appconfig loads pipeweave's CLI-wide settings: logging, log
// rotation and the optional metrics listener. Settings come from, in
// increasing priority, built-in defaults, ~/.pipeweave.yaml, and
// PIPEWEAVE_-prefixed environment variables.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings is the typed CLI configuration.
type Settings struct {
	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
	LogMaxAgeDays int    `mapstructure:"log_max_age_days"`
	MetricsAddr   string `mapstructure:"metrics_addr"`
}

const (
	defaultLogLevel      = "info"
	defaultLogMaxSizeMB  = 50
	defaultLogMaxBackups = 5
	defaultLogMaxAgeDays = 28
)

// Load reads settings from ~/.pipeweave.yaml (if present) and the
// environment, falling back to defaults. A missing config file is not an
// error; an invalid one is.
func Load() (*Settings, error) {
	v := viper.New()
	v.SetConfigName(".pipeweave")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("PIPEWEAVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("appconfig: read config: %w", err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("appconfig: unmarshal config: %w", err)
	}

	return settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", defaultLogMaxSizeMB)
	v.SetDefault("log_max_backups", defaultLogMaxBackups)
	v.SetDefault("log_max_age_days", defaultLogMaxAgeDays)
	v.SetDefault("metrics_addr", "")
}

// ExpandPath expands a leading ~ into the user's home directory.
func ExpandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[2:])
}
