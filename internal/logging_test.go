package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesFile(t *testing.T) {
	config := testConfig()
	config.LogFile = true
	config.LogFilePath = filepath.Join(t.TempDir(), "logs", "plmp3.log")

	logger, closer, err := NewLogger(config)
	require.NoError(t, err)

	logger.Info().Str("run_id", "abc").Msg("run started")
	logger.Debug().Msg("hidden at info level")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(config.LogFilePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"run_id":"abc"`)
	assert.Contains(t, string(content), `"message":"run started"`)
	assert.NotContains(t, string(content), "hidden at info level")
}

func TestNewLoggerDisabled(t *testing.T) {
	logger, closer, err := NewLogger(testConfig())
	require.NoError(t, err)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
	assert.NoError(t, closer.Close())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("WARNING"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("chatty"))
}
