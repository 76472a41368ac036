package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Pointer fields are
// optional overrides; nil leaves the default in place.
type FileConfig struct {
	DB       *string             `toml:"db"`
	LogLevel *string             `toml:"log-level"`
	Session  SessionFile         `toml:"session"`
	Games    map[string]GameFile `toml:"games"`
}

// SessionFile maps session timing settings.
type SessionFile struct {
	Duration     *time.Duration `toml:"duration"`
	GraceDelay   *time.Duration `toml:"grace-delay"`
	TickInterval *time.Duration `toml:"tick-interval"`
}

// GameFile maps per-game overrides. Keys of the games table may be any
// alias accepted by games.Canonical.
type GameFile struct {
	Level    *int           `toml:"level"`
	Duration *time.Duration `toml:"duration"`
	Policy   *string        `toml:"policy"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return FileConfig{}, fmt.Errorf("decode config: unknown key %q", undec[0].String())
	}
	return cfg, nil
}
