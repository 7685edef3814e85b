package internal

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName is used for XDG directories, the env prefix and log files
const AppName = "plmp3"

// CommandRunner executes external commands
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner implements CommandRunner
type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Config holds application settings
type Config struct {
	// User configurable settings
	AudioFormat  string `validate:"oneof=mp3 m4a aac flac opus vorbis wav alac best"`
	AudioQuality string `validate:"required"`
	Quiet        bool
	NoWarnings   bool
	IgnoreErrors bool
	Verbose      bool
	AutoInstall  bool
	LogFile      bool
	LogLevel     string `validate:"oneof=debug info warn error"`

	// Fixed XDG paths (not configurable)
	ConfigDir   string
	CacheDir    string
	LogFilePath string
}

//go:embed config.toml
var defaultFS embed.FS

var validate = validator.New()

// ensureDefaultFile creates a file in configDir from the embedded default if it's missing
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return errors.Wrapf(err, "reading embedded default %s", description)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return errors.Wrapf(err, "writing default %s", description)
	}

	return nil
}

// EnsureDefaultConfig writes the embedded config.toml into the XDG config directory
// if none exists yet
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// InitConfig loads configuration from defaults, config.toml, .env and PLMP3_* variables
func InitConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	configDir := filepath.Join(xdg.ConfigHome, AppName)
	cacheDir := filepath.Join(xdg.CacheHome, AppName)

	v := viper.New()

	v.SetDefault("audio_format", DefaultAudioFormat)
	v.SetDefault("audio_quality", DefaultAudioQuality)
	v.SetDefault("quiet", false)
	v.SetDefault("no_warnings", false)
	v.SetDefault("ignore_errors", false)
	v.SetDefault("verbose", false)
	v.SetDefault("auto_install", true)
	v.SetDefault("log_file", true)
	v.SetDefault("log_level", "info")

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("PLMP3")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := &Config{
		AudioFormat:  v.GetString("audio_format"),
		AudioQuality: v.GetString("audio_quality"),
		Quiet:        v.GetBool("quiet"),
		NoWarnings:   v.GetBool("no_warnings"),
		IgnoreErrors: v.GetBool("ignore_errors"),
		Verbose:      v.GetBool("verbose"),
		AutoInstall:  v.GetBool("auto_install"),
		LogFile:      v.GetBool("log_file"),
		LogLevel:     v.GetString("log_level"),

		ConfigDir:   configDir,
		CacheDir:    cacheDir,
		LogFilePath: filepath.Join(cacheDir, AppName+".log"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the user configurable settings
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}
