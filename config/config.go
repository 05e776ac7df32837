// Package config loads cfactory CLI settings from a config file, CFACTORY_*
// environment variables and bound command line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. CFACTORY_LOG_LEVEL.
const EnvPrefix = "CFACTORY"

// Config holds the CLI settings after defaults, file, env and flags are merged.
type Config struct {
	// Files are component YAML files. Earlier files win on duplicate names.
	Files []string `mapstructure:"files"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Strict surfaces malformed instance requests as errors.
	Strict bool `mapstructure:"strict"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Load reads configuration into v (a fresh instance when nil). path may be empty, in
// which case only defaults and environment variables apply.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	def := Defaults()
	v.SetDefault("files", def.Files)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("strict", def.Strict)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var (
	// ErrLogLevel is returned by Validate for an unknown log_level.
	ErrLogLevel = errors.New("config: log_level must be one of debug|info|warn|error")
	// ErrLogFormat is returned by Validate for an unknown log_format.
	ErrLogFormat = errors.New("config: log_format must be one of text|json")
)

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		return ErrLogLevel
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return ErrLogFormat
	}
	return nil
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Logger builds the slog logger described by the config, writing to stderr.
func (c Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: levels[strings.ToLower(c.LogLevel)]}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
