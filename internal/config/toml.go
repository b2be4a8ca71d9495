// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Workout WorkoutConfig `toml:"workout"`
	UI      UIConfig      `toml:"ui"`
}

// WorkoutConfig maps workout plan settings. Durations are Go duration
// strings such as "3m" or "45s".
type WorkoutConfig struct {
	Warmup *string `toml:"warmup"`
	Round  *string `toml:"round"`
	Rest   *string `toml:"rest"`
	Rounds *int    `toml:"rounds"`
}

// UIConfig maps interface behavior settings.
type UIConfig struct {
	Autostart   *bool `toml:"autostart"`
	ConfirmQuit *bool `toml:"confirm-quit"`
	History     *bool `toml:"history"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// ParseSeconds converts a duration string to whole seconds. name is used
// in error messages.
func ParseSeconds(name, value string) (int, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	if d%time.Second != 0 {
		return 0, fmt.Errorf("%s must be a whole number of seconds", name)
	}
	return int(d / time.Second), nil
}
