package internal

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// NewLogger builds the diagnostic logger for a run. Run records go to the log file as
// JSON; in verbose mode a console copy at debug level goes to stderr. The returned
// closer releases the log file.
func NewLogger(config *Config) (zerolog.Logger, io.Closer, error) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	level := parseLevel(config.LogLevel)

	if config.LogFile {
		if err := os.MkdirAll(filepath.Dir(config.LogFilePath), 0755); err != nil {
			return zerolog.Nop(), closer, errors.Wrap(err, "creating log directory")
		}
		f, err := os.OpenFile(config.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), closer, errors.Wrap(err, "opening log file")
		}
		writers = append(writers, f)
		closer = f
	}

	if config.Verbose {
		level = zerolog.DebugLevel
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.TimeOnly,
		})
	}

	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger, closer, nil
}

// parseLevel parses the log level string.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
