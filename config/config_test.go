package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, Defaults().LogLevel, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.Strict)
	assert.Empty(t, cfg.Files)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfactory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"files:\n  - a.yaml\n  - b.yaml\nlog_level: debug\nlog_format: json\n"), 0o600))

	t.Setenv("CFACTORY_STRICT", "true")
	t.Setenv("CFACTORY_LOG_LEVEL", "error")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.yaml", "b.yaml"}, cfg.Files)
	assert.Equal(t, "error", cfg.LogLevel, "env overrides file")
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Strict)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("CFACTORY_LOG_FORMAT", "xml")

	_, err := Load(viper.New(), "")
	require.ErrorIs(t, err, ErrLogFormat)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "upper case level", cfg: Config{LogLevel: "INFO", LogFormat: "JSON"}},
		{name: "bad level", cfg: Config{LogLevel: "trace", LogFormat: "text"}, want: ErrLogLevel},
		{name: "bad format", cfg: Config{LogLevel: "info", LogFormat: "xml"}, want: ErrLogFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogger(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, Config{LogLevel: "debug", LogFormat: "json"}.Logger())
	assert.NotNil(t, Defaults().Logger())
}
