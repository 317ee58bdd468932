package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"woodsim/internal/errors"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := NewFlagSet("woodsim")
	require.NoError(t, fs.Parse(args))
	return Setup(fs)
}

func TestSetup_Defaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)

	require.Equal(t, 50, cfg.Games)
	require.Equal(t, DefaultGnuGoPath(), cfg.GnuGoPath)
	require.Equal(t, "games", cfg.GamesDir)
	require.Equal(t, 1, cfg.Level)
	require.Equal(t, 300*time.Second, cfg.Timeout)
	require.Equal(t, 1, cfg.Workers)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "console", cfg.LogFormat)
	require.Empty(t, cfg.StatusAddr)
}

func TestSetup_FlagsOverride(t *testing.T) {
	cfg, err := parse(t, "-n", "3", "--gnugo-path", "/opt/gnugo", "--timeout", "2s", "--workers", "4")
	require.NoError(t, err)

	require.Equal(t, 3, cfg.Games)
	require.Equal(t, "/opt/gnugo", cfg.GnuGoPath)
	require.Equal(t, 2*time.Second, cfg.Timeout)
	require.Equal(t, 4, cfg.Workers)
}

func TestSetup_EnvBelowFlags(t *testing.T) {
	t.Setenv("WOODSIM_GAMES", "7")
	t.Setenv("WOODSIM_GAMES_DIR", "records")

	cfg, err := parse(t, "--games-dir", "sgf")
	require.NoError(t, err)

	require.Equal(t, 7, cfg.Games, "env should override the default")
	require.Equal(t, "sgf", cfg.GamesDir, "flag should override env")
}

func TestSetup_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "woodsim.yaml")
	err := os.WriteFile(path, []byte("games: 12\nlevel: 3\nlog-format: json\n"), 0600)
	require.NoError(t, err)

	cfg, err := parse(t, "--config", path, "--level", "5")
	require.NoError(t, err)

	require.Equal(t, 12, cfg.Games)
	require.Equal(t, 5, cfg.Level)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestSetup_MissingConfigFile(t *testing.T) {
	_, err := parse(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestSetup_Invalid(t *testing.T) {
	cases := map[string][]string{
		"zero games":   {"-n", "0"},
		"no engine":    {"--gnugo-path", ""},
		"bad workers":  {"--workers", "0"},
		"bad timeout":  {"--timeout", "0s"},
		"bad level":    {"--log-level", "loud"},
		"bad format":   {"--log-format", "xml"},
		"no games dir": {"--games-dir", ""},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parse(t, args...)
			require.ErrorIs(t, err, errors.ErrInvalidConfig)
		})
	}
}
