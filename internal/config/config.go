// Package config resolves runtime settings from defaults, a TOML file and
// the environment, in that order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/spiread/internal/difficulty"
	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/session"
)

// Config is the fully resolved configuration.
type Config struct {
	DBPath   string
	LogLevel slog.Level

	// Duration overrides every profile's default session length when set.
	Duration     time.Duration
	GraceDelay   time.Duration
	TickInterval time.Duration

	Games map[games.ID]GameConfig
}

// GameConfig holds per-game overrides. Zero values defer to the profile.
type GameConfig struct {
	Level    int
	Duration time.Duration
	Policy   games.PolicyKind
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:     slog.LevelWarn,
		GraceDelay:   session.DefaultGraceDelay,
		TickInterval: session.DefaultTickInterval,
		Games:        map[games.ID]GameConfig{},
	}
}

// Load reads the TOML file at path and then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyFile(file); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	var ev EnvConfig
	if err := ParseEnv(&ev); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(ev); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(f FileConfig) error {
	if f.DB != nil {
		c.DBPath = *f.DB
	}
	if f.LogLevel != nil {
		lvl, err := ParseLevel(*f.LogLevel)
		if err != nil {
			return err
		}
		c.LogLevel = lvl
	}
	if err := c.applyTiming(f.Session.Duration, f.Session.GraceDelay, f.Session.TickInterval); err != nil {
		return err
	}

	for key, gf := range f.Games {
		id, err := games.Canonical(key)
		if err != nil {
			return fmt.Errorf("games.%s: %w", key, err)
		}
		gc := c.Games[id]
		if gf.Level != nil {
			p, _ := games.Lookup(id)
			if *gf.Level < 1 || *gf.Level > p.MaxLevel {
				return fmt.Errorf("games.%s: level %d outside [1, %d]", key, *gf.Level, p.MaxLevel)
			}
			gc.Level = *gf.Level
		}
		if gf.Duration != nil {
			if *gf.Duration <= 0 {
				return fmt.Errorf("games.%s: duration must be positive", key)
			}
			gc.Duration = *gf.Duration
		}
		if gf.Policy != nil {
			kind := games.PolicyKind(strings.ToLower(*gf.Policy))
			if kind != games.KindStreak && kind != games.KindWindow {
				return fmt.Errorf("games.%s: unknown policy %q", key, *gf.Policy)
			}
			gc.Policy = kind
		}
		c.Games[id] = gc
	}
	return nil
}

func (c *Config) applyEnv(e EnvConfig) error {
	if e.DB != nil {
		c.DBPath = *e.DB
	}
	if e.LogLevel != nil {
		lvl, err := ParseLevel(*e.LogLevel)
		if err != nil {
			return fmt.Errorf("SPIREAD_LOG_LEVEL: %w", err)
		}
		c.LogLevel = lvl
	}
	return c.applyTiming(e.Duration, e.GraceDelay, e.TickInterval)
}

func (c *Config) applyTiming(duration, grace, tick *time.Duration) error {
	if duration != nil {
		if *duration < 0 {
			return fmt.Errorf("duration must not be negative")
		}
		c.Duration = *duration
	}
	if grace != nil {
		c.GraceDelay = *grace
		if c.GraceDelay == 0 {
			// Zero would fall back to the default; disable explicitly.
			c.GraceDelay = -1
		}
	}
	if tick != nil {
		if *tick <= 0 {
			return fmt.Errorf("tick interval must be positive")
		}
		c.TickInterval = *tick
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// SessionFor builds the session configuration and options for game.
// lastLevel is the persisted level to resume from; a configured level
// takes precedence over it.
func (c Config) SessionFor(id games.ID, lastLevel int) (session.Config, []session.Option, error) {
	p, err := games.Lookup(id)
	if err != nil {
		return session.Config{}, nil, err
	}
	gc := c.Games[id]

	level := lastLevel
	if gc.Level > 0 {
		level = gc.Level
	}
	if level < 1 {
		level = 1
	}
	if level > p.MaxLevel {
		level = p.MaxLevel
	}

	duration := p.DefaultDuration
	if c.Duration > 0 {
		duration = c.Duration
	}
	if gc.Duration > 0 {
		duration = gc.Duration
	}

	cfg := session.Config{
		Game:         id,
		InitialLevel: level,
		Duration:     duration,
		GraceDelay:   c.GraceDelay,
		TickInterval: c.TickInterval,
	}

	var opts []session.Option
	if gc.Policy != "" && gc.Policy != p.Adjustment.Kind {
		spec := games.WindowSpec(time.Second)
		if gc.Policy == games.KindStreak {
			spec = games.StreakSpec(1)
		}
		pol, err := difficulty.NewPolicy(spec)
		if err != nil {
			return session.Config{}, nil, err
		}
		opts = append(opts, session.WithControllerOptions(difficulty.WithPolicy(pol)))
	}
	return cfg, opts, nil
}
