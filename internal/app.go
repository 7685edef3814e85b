package internal

import (
	"context"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Invocation is a parsed command line
type Invocation struct {
	Reference string
	OutputDir string
}

// ParseInvocation maps positional arguments to an Invocation:
// <playlist_url> [output_directory]
func ParseInvocation(args []string) (Invocation, error) {
	if len(args) == 0 || args[0] == "" {
		return Invocation{}, ErrUsage
	}

	inv := Invocation{
		Reference: ParseArg(args[0]),
		OutputDir: DefaultOutputDir,
	}
	if len(args) > 1 && args[1] != "" {
		inv.OutputDir = args[1]
	}
	return inv, nil
}

// App holds the application state and dependencies
type App struct {
	backend Backend
	config  *Config
	ui      UIManager
	logger  zerolog.Logger
}

// NewApp initializes the application with the yt-dlp backend unless overridden
func NewApp(config *Config, options ...AppOption) *App {
	app := &App{
		config: config,
		ui:     NewUIManager(config.Verbose, config.Quiet),
		logger: zerolog.Nop(),
	}

	for _, option := range options {
		option(app)
	}

	if app.backend == nil {
		app.backend = NewYTDLP(config, app.ui, app.logger, NewTranscoder(&DefaultCommandRunner{}, config.AutoInstall))
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithBackend sets a custom extraction backend
func WithBackend(backend Backend) AppOption {
	return func(a *App) {
		a.backend = backend
	}
}

// WithUI sets a custom UI manager
func WithUI(ui UIManager) AppOption {
	return func(a *App) {
		a.ui = ui
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger zerolog.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// Run downloads every entry of a playlist as audio into the output directory.
// It never exits the process; the caller maps Result.Status to an exit code.
func (app *App) Run(ctx context.Context, inv Invocation) Result {
	logger := app.logger.With().
		Str("run_id", uuid.NewString()).
		Str("reference", inv.Reference).
		Logger()

	if inv.Reference == "" {
		return Result{Status: StatusUsageError, Err: ErrUsage}
	}
	if inv.OutputDir == "" {
		inv.OutputDir = DefaultOutputDir
	}

	if err := EnsureDirs(inv.OutputDir); err != nil {
		return app.fail(logger, inv, errors.Wrapf(err, "creating output directory %s", inv.OutputDir))
	}

	cfg := NewDownloadConfig(inv.OutputDir, app.config)
	logger.Info().
		Str("output_dir", cfg.OutputDir).
		Str("playlist_id", PlaylistID(inv.Reference)).
		Msg("run started")

	app.ui.Printf("Fetching playlist information from: %s\n", inv.Reference)

	info, err := app.backend.Probe(ctx, inv.Reference)
	if err != nil {
		return app.fail(logger, inv, err)
	}

	if !info.IsPlaylist() {
		logger.Warn().Msg("reference is not a playlist")
		app.ui.Errorf("Error: This doesn't appear to be a valid playlist URL\n")
		return Result{Status: StatusNotPlaylist, OutputDir: inv.OutputDir, Err: ErrNotPlaylist}
	}

	total := info.Available()
	outputDir := inv.OutputDir
	if abs, err := filepath.Abs(outputDir); err == nil {
		outputDir = abs
	}

	app.ui.Printf("\nFound %d videos in the playlist\n", total)
	app.ui.Printf("Downloads will be saved to: %s\n\n", outputDir)
	logger.Info().Int("total", total).Int("entries", len(info.Entries)).Msg("playlist resolved")

	if err := app.backend.Fetch(ctx, inv.Reference, cfg); err != nil {
		return app.fail(logger, inv, err)
	}

	// The count is the pre-download total; per-entry outcomes are the backend's concern.
	app.ui.Printf("\n✓ Successfully downloaded %d songs!\n", total)
	logger.Info().Int("total", total).Msg("run finished")

	return Result{Status: StatusSuccess, Total: total, OutputDir: outputDir}
}

// Info probes a reference without downloading anything
func (app *App) Info(ctx context.Context, reference string) (*PlaylistInfo, error) {
	app.logger.Debug().Str("reference", reference).Msg("info requested")
	info, err := app.backend.Probe(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !info.IsPlaylist() {
		return info, ErrNotPlaylist
	}
	return info, nil
}

func (app *App) fail(logger zerolog.Logger, inv Invocation, err error) Result {
	logger.Error().Err(err).Msg("run failed")
	app.ui.Errorf("Error occurred: %v\n", err)
	return Result{Status: StatusFailure, OutputDir: inv.OutputDir, Err: err}
}
