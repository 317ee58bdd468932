package bootstrap

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"woodsim/internal/errors"
)

const EnvPrefix = "WOODSIM"

type Config struct {
	Games      int           `mapstructure:"games"`
	GnuGoPath  string        `mapstructure:"gnugo-path"`
	GamesDir   string        `mapstructure:"games-dir"`
	Level      int           `mapstructure:"level"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Workers    int           `mapstructure:"workers"`
	Seed       int64         `mapstructure:"seed"`
	StatusAddr string        `mapstructure:"status-addr"`
	GrpcAddr   string        `mapstructure:"grpc-addr"`
	MongoUri   string        `mapstructure:"mongo-uri"`
	RedisUrl   string        `mapstructure:"redis-url"`
	ReportPdf  string        `mapstructure:"report-pdf"`
	LogLevel   string        `mapstructure:"log-level"`
	LogFormat  string        `mapstructure:"log-format"`
}

func DefaultGnuGoPath() string {
	if runtime.GOOS == "windows" {
		return "gnugo.exe"
	}
	return "gnugo"
}

// NewFlagSet declares every command line option. The caller owns parsing so
// that --help can be handled before Setup runs.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.IntP("games", "n", 50, "number of games to simulate")
	fs.String("gnugo-path", DefaultGnuGoPath(), "path to the GNU Go executable")
	fs.String("games-dir", "games", "directory for SGF game records")
	fs.Int("level", 1, "GNU Go difficulty level")
	fs.Duration("timeout", 300*time.Second, "hard timeout for one engine call")
	fs.Int("workers", 1, "number of games played at the same time")
	fs.Int64("seed", 0, "random seed for stone placement (0 uses the clock)")
	fs.String("status-addr", "", "address of the HTTP status server, empty disables it")
	fs.String("grpc-addr", "", "address of the gRPC health server, empty disables it")
	fs.String("mongo-uri", "", "MongoDB URI for storing results, empty disables it")
	fs.String("redis-url", "", "Redis address for live tallies, empty disables it")
	fs.String("report-pdf", "", "write the final report to this PDF file")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("log-format", "console", "log format: console or json")
	fs.String("config", "", "optional config file (yaml, json, toml or env)")
	return fs
}

// Setup merges defaults, the optional config file, WOODSIM_* environment
// variables and the parsed flags, in increasing priority.
func Setup(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgPath := v.GetString("config"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", errors.ErrInvalidConfig, cfgPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Games < 1:
		return fmt.Errorf("%w: games must be positive, got %d", errors.ErrInvalidConfig, c.Games)
	case c.GnuGoPath == "":
		return fmt.Errorf("%w: gnugo-path is empty", errors.ErrInvalidConfig)
	case c.GamesDir == "":
		return fmt.Errorf("%w: games-dir is empty", errors.ErrInvalidConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", errors.ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", errors.ErrInvalidConfig)
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log-level must be debug, info, warn or error", errors.ErrInvalidConfig)
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log-format must be console or json", errors.ErrInvalidConfig)
	}
	return nil
}
