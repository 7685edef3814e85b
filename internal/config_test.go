package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "m4a", mutate: func(c *Config) { c.AudioFormat = "m4a" }},
		{name: "unknown codec", mutate: func(c *Config) { c.AudioFormat = "midi" }, wantErr: true},
		{name: "empty quality", mutate: func(c *Config) { c.AudioQuality = "" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// isolateXDG points the XDG base directories at temporary locations
func isolateXDG(t *testing.T) {
	t.Helper()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	xdg.Reload()
}

func TestInitConfigDefaults(t *testing.T) {
	isolateXDG(t)
	t.Chdir(t.TempDir())

	config, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "mp3", config.AudioFormat)
	assert.Equal(t, "192", config.AudioQuality)
	assert.False(t, config.Quiet)
	assert.True(t, config.AutoInstall)
	assert.Equal(t, filepath.Join(config.CacheDir, "plmp3.log"), config.LogFilePath)
}

func TestInitConfigEnvironment(t *testing.T) {
	isolateXDG(t)
	t.Chdir(t.TempDir())
	t.Setenv("PLMP3_AUDIO_FORMAT", "flac")
	t.Setenv("PLMP3_QUIET", "true")

	config, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "flac", config.AudioFormat)
	assert.True(t, config.Quiet)
}

func TestInitConfigRejectsInvalidFile(t *testing.T) {
	isolateXDG(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`audio_format = "midi"`), 0644))

	_, err := InitConfig()
	assert.Error(t, err)
}

func TestEnsureDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plmp3")

	require.NoError(t, EnsureDefaultConfig(dir))
	content, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `audio_format = "mp3"`)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("custom"), 0644))
	require.NoError(t, EnsureDefaultConfig(dir))
	content, err = os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "custom", string(content))
}
