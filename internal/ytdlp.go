package internal

import (
	"bufio"
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"
)

const progressInterval = 500 * time.Millisecond

// YTDLP is the Backend backed by yt-dlp through go-ytdlp
type YTDLP struct {
	config     *Config
	ui         UIManager
	logger     zerolog.Logger
	transcoder *Transcoder

	installOnce sync.Once
	installErr  error
}

// NewYTDLP creates a yt-dlp backend
func NewYTDLP(config *Config, ui UIManager, logger zerolog.Logger, transcoder *Transcoder) *YTDLP {
	return &YTDLP{
		config:     config,
		ui:         ui,
		logger:     logger,
		transcoder: transcoder,
	}
}

// ensureInstalled installs yt-dlp through go-ytdlp once per process when enabled
func (yt *YTDLP) ensureInstalled(ctx context.Context) error {
	if !yt.config.AutoInstall {
		return nil
	}
	yt.installOnce.Do(func() {
		yt.logger.Debug().Msg("resolving yt-dlp install")
		if _, err := ytdlp.Install(ctx, nil); err != nil {
			yt.installErr = errors.Wrap(err, "installing yt-dlp")
		}
	})
	return yt.installErr
}

// Probe fetches playlist metadata with --dump-single-json and --skip-download
func (yt *YTDLP) Probe(ctx context.Context, reference string) (*PlaylistInfo, error) {
	if err := yt.ensureInstalled(ctx); err != nil {
		return nil, err
	}

	dl := ytdlp.New().
		DumpSingleJSON(). // one JSON document for the whole playlist
		YesPlaylist().
		SkipDownload()
	if yt.config.IgnoreErrors {
		dl = dl.IgnoreErrors()
	}

	yt.logger.Debug().Str("reference", reference).Msg("probing")
	result, err := dl.Run(ctx, reference)
	if err != nil {
		return nil, yt.runError("extracting playlist info", result, err)
	}
	yt.printWarnings(result)

	info, err := ParsePlaylistInfo([]byte(result.Stdout))
	if err != nil {
		return nil, err
	}

	yt.logger.Debug().
		Str("title", info.Title).
		Bool("playlist", info.IsPlaylist()).
		Int("entries", len(info.Entries)).
		Msg("probe finished")

	return info, nil
}

// Fetch downloads the playlist and applies the configured post-processors
func (yt *YTDLP) Fetch(ctx context.Context, reference string, cfg DownloadConfig) error {
	if err := yt.ensureInstalled(ctx); err != nil {
		return err
	}

	if cfg.ExtractAudio {
		if err := yt.transcoder.Check(ctx); err != nil {
			return err
		}
	}

	dl := applyConfig(ytdlp.New().YesPlaylist(), cfg)

	var tracker *progressTracker
	if !cfg.Quiet {
		tracker = &progressTracker{ui: yt.ui}
		dl.ProgressFunc(progressInterval, tracker.update)
	}

	yt.logger.Debug().
		Str("reference", reference).
		Str("output", cfg.OutputTemplate).
		Str("audio_format", cfg.AudioFormat).
		Msg("fetching")
	result, err := dl.Run(ctx, reference)
	if tracker != nil {
		tracker.finish()
	}
	if !cfg.Quiet {
		yt.printOutput(result)
	}
	if err != nil {
		return yt.runError("downloading playlist", result, err)
	}
	yt.printWarnings(result)

	return nil
}

// applyConfig maps a DownloadConfig onto a go-ytdlp command
func applyConfig(dl *ytdlp.Command, cfg DownloadConfig) *ytdlp.Command {
	dl = dl.Format(cfg.Format).Output(cfg.OutputTemplate)

	if cfg.ExtractAudio {
		dl = dl.ExtractAudio().
			AudioFormat(cfg.AudioFormat).
			AudioQuality(normalizeAudioQuality(cfg.AudioQuality))
	}
	if cfg.EmbedMetadata {
		dl = dl.EmbedMetadata()
	}
	if !cfg.WriteThumbnail {
		dl = dl.NoWriteThumbnail()
	}
	if !cfg.EmbedThumbnail {
		dl = dl.NoEmbedThumbnail()
	}
	if cfg.Quiet {
		dl = dl.Quiet()
	}
	if cfg.NoWarnings {
		dl = dl.NoWarnings()
	}
	if cfg.IgnoreErrors {
		dl = dl.IgnoreErrors()
	}

	return dl
}

// normalizeAudioQuality turns a bare bitrate like "192" into "192K". Values 0-10 are
// VBR levels and pass through, as does anything already carrying a unit.
func normalizeAudioQuality(quality string) string {
	quality = strings.TrimSpace(quality)
	n, err := strconv.Atoi(quality)
	if err != nil || n <= 10 {
		return quality
	}
	return quality + "K"
}

// runError wraps a failed yt-dlp run with the last ERROR line it printed
func (yt *YTDLP) runError(op string, result *ytdlp.Result, err error) error {
	var stderr string
	if result != nil {
		stderr = result.Stderr
	}

	yt.logger.Error().Err(err).Str("op", op).Str("stderr", stderr).Msg("yt-dlp failed")
	if yt.config.Verbose && stderr != "" {
		yt.ui.Verbose("Stderr: %s\n", stderr)
	}

	if line := lastErrorLine(stderr); line != "" {
		return errors.Wrapf(err, "%s: %s", op, line)
	}
	return errors.Wrap(err, op)
}

// printWarnings echoes yt-dlp warnings unless they are turned off
func (yt *YTDLP) printWarnings(result *ytdlp.Result) {
	if result == nil || yt.config.NoWarnings {
		return
	}
	for _, w := range backendWarnings(result.Stderr) {
		yt.logger.Warn().Msg(w)
		yt.ui.Warnf("%s\n", w)
	}
}

// printOutput echoes the status lines yt-dlp printed, e.g. extraction and metadata steps
func (yt *YTDLP) printOutput(result *ytdlp.Result) {
	if result == nil {
		return
	}
	for _, line := range backendLines(result.Stdout) {
		yt.ui.Println(line)
	}
}

// backendLines returns the "[component] message" lines of yt-dlp stdout. Download
// percentages are left out since the progress bars already show them.
func backendLines(stdout string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(stdout))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "[") {
			continue
		}
		if strings.HasPrefix(line, "[download]") && strings.Contains(line, "%") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// backendWarnings returns the WARNING: lines of yt-dlp stderr output
func backendWarnings(stderr string) []string {
	var warnings []string
	scanner := bufio.NewScanner(strings.NewReader(stderr))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "WARNING:") {
			warnings = append(warnings, line)
		}
	}
	return warnings
}

// lastErrorLine returns the last ERROR: line of yt-dlp stderr output
func lastErrorLine(stderr string) string {
	var last string
	scanner := bufio.NewScanner(strings.NewReader(stderr))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "ERROR:") {
			last = line
		}
	}
	return last
}

// progressTracker turns go-ytdlp progress updates into one bar per entry
type progressTracker struct {
	ui      UIManager
	mu      sync.Mutex
	bar     ProgressBar
	current string
}

func (p *progressTracker) update(update ytdlp.ProgressUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()

	title := "entry"
	if update.Info != nil && update.Info.Title != nil && *update.Info.Title != "" {
		title = *update.Info.Title
	}

	if p.bar == nil || title != p.current {
		if p.bar != nil {
			p.bar.Finish()
		}
		p.bar = p.ui.NewProgressBar(100, "Downloading "+title)
		p.current = title
	}

	if update.TotalBytes > 0 {
		p.bar.Set(int(float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100))
	}
}

func (p *progressTracker) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		p.bar.Set(100)
		p.bar.Finish()
		p.bar = nil
	}
}
