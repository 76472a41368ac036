package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/session"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	p := writeConfig(t, `
db = "/tmp/x.db"
log-level = "debug"

[session]
duration = "90s"
grace-delay = "3s"

[games.schulte_table]
level = 4
policy = "window"

[games.memory-digits]
duration = "2m"
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 90*time.Second, cfg.Duration)
	assert.Equal(t, 3*time.Second, cfg.GraceDelay)
	assert.Equal(t, session.DefaultTickInterval, cfg.TickInterval)
	assert.Equal(t, GameConfig{Level: 4, Policy: games.KindWindow}, cfg.Games[games.Schulte])
	assert.Equal(t, 2*time.Minute, cfg.Games[games.MemoryDigits].Duration)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", `colour = "red"`},
		{"unknown game", "[games.tetris]\nlevel = 2"},
		{"level too high", "[games.schulte]\nlevel = 99"},
		{"level zero", "[games.schulte]\nlevel = 0"},
		{"bad policy", "[games.parimpar]\npolicy = \"random\""},
		{"bad log level", `log-level = "loud"`},
		{"zero tick", "[session]\ntick-interval = \"0s\""},
		{"not toml", "= = ="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestEnvOverridesFile(t *testing.T) {
	p := writeConfig(t, "log-level = \"debug\"\n[session]\nduration = \"90s\"\n")
	t.Setenv("SPIREAD_LOG_LEVEL", "error")
	t.Setenv("SPIREAD_DURATION", "45s")
	t.Setenv("SPIREAD_GRACE_DELAY", "0s")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, cfg.LogLevel)
	assert.Equal(t, 45*time.Second, cfg.Duration)
	assert.Negative(t, int64(cfg.GraceDelay), "zero grace disables auto-pause")
}

func TestEnvBadDuration(t *testing.T) {
	t.Setenv("SPIREAD_TICK_INTERVAL", "soon")
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestSessionFor(t *testing.T) {
	cfg := Default()
	cfg.Games[games.Anagrams] = GameConfig{Level: 7}

	sc, opts, err := cfg.SessionFor(games.Schulte, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, sc.InitialLevel, "resumes the persisted level")
	assert.Equal(t, 60*time.Second, sc.Duration, "profile default")
	assert.Equal(t, session.DefaultGraceDelay, sc.GraceDelay)
	assert.Empty(t, opts)

	sc, _, err = cfg.SessionFor(games.Anagrams, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, sc.InitialLevel, "configured level wins")

	sc, _, err = cfg.SessionFor(games.ParImpar, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, sc.InitialLevel)

	sc, _, err = cfg.SessionFor(games.ParImpar, 500)
	require.NoError(t, err)
	assert.Equal(t, games.DefaultMaxLevel, sc.InitialLevel)

	_, _, err = cfg.SessionFor("tetris", 1)
	assert.ErrorIs(t, err, games.ErrUnknownGame)
}

func TestSessionForDurationPrecedence(t *testing.T) {
	cfg := Default()
	cfg.Duration = 2 * time.Minute
	cfg.Games[games.TwinWords] = GameConfig{Duration: 30 * time.Second}

	sc, _, err := cfg.SessionFor(games.Schulte, 1)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, sc.Duration)

	sc, _, err = cfg.SessionFor(games.TwinWords, 1)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, sc.Duration)
}

func TestSessionForPolicyOverride(t *testing.T) {
	cfg := Default()
	cfg.Games[games.Schulte] = GameConfig{Policy: games.KindWindow}
	cfg.Games[games.TwinWords] = GameConfig{Policy: games.KindWindow}

	sc, opts, err := cfg.SessionFor(games.Schulte, 1)
	require.NoError(t, err)
	require.Len(t, opts, 1)
	_, err = session.New(sc, opts...)
	require.NoError(t, err)

	// Same kind as the profile leaves the built-in tuning alone.
	_, opts, err = cfg.SessionFor(games.TwinWords, 1)
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("SPIREAD_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "spiread", "config.toml"), DefaultConfigPath())

	t.Setenv("SPIREAD_CONFIG", "/etc/spiread.toml")
	assert.Equal(t, "/etc/spiread.toml", DefaultConfigPath())
}
