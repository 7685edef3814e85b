package internal

import (
	"encoding/json"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Entry is a single resolved playlist item. A nil *Entry is an unavailable item.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"webpage_url"`
}

// PlaylistInfo is the result of a metadata-only probe
type PlaylistInfo struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Entries []*Entry `json:"entries"`

	// hasEntries records whether the probe result carried an entries field at all
	hasEntries bool
}

// NewPlaylistInfo builds a playlist result with the given entries (nil entries allowed)
func NewPlaylistInfo(title string, entries ...*Entry) *PlaylistInfo {
	if entries == nil {
		entries = []*Entry{}
	}
	return &PlaylistInfo{
		Title:      title,
		Entries:    entries,
		hasEntries: true,
	}
}

// IsPlaylist reports whether the probed reference resolved to a playlist
func (p *PlaylistInfo) IsPlaylist() bool {
	return p != nil && p.hasEntries
}

// Available counts the entries that are not unavailable
func (p *PlaylistInfo) Available() int {
	if p == nil {
		return 0
	}
	total := 0
	for _, e := range p.Entries {
		if e != nil {
			total++
		}
	}
	return total
}

// ParsePlaylistInfo decodes the single JSON document yt-dlp prints for a reference
func ParsePlaylistInfo(data []byte) (*PlaylistInfo, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing playlist metadata")
	}

	info := &PlaylistInfo{}
	if v, ok := raw["id"]; ok {
		_ = json.Unmarshal(v, &info.ID)
	}
	if v, ok := raw["title"]; ok {
		_ = json.Unmarshal(v, &info.Title)
	}

	entries, ok := raw["entries"]
	if !ok || string(entries) == "null" {
		return info, nil
	}
	if err := json.Unmarshal(entries, &info.Entries); err != nil {
		return nil, errors.Wrap(err, "parsing playlist entries")
	}
	if info.Entries == nil {
		info.Entries = []*Entry{}
	}
	info.hasEntries = true

	return info, nil
}

// DownloadConfig holds the backend options for one invocation
type DownloadConfig struct {
	Format         string
	ExtractAudio   bool
	AudioFormat    string
	AudioQuality   string
	EmbedMetadata  bool
	OutputDir      string
	OutputTemplate string
	Quiet          bool
	NoWarnings     bool
	WriteThumbnail bool
	EmbedThumbnail bool
	IgnoreErrors   bool
}

// Default audio settings
const (
	DefaultOutputDir    = "downloads"
	DefaultAudioFormat  = "mp3"
	DefaultAudioQuality = "192"
	bestAudioFormat     = "bestaudio/best"
	titleTemplate       = "%(title)s.%(ext)s"
)

// NewDownloadConfig derives the backend options for a run writing into outputDir
func NewDownloadConfig(outputDir string, config *Config) DownloadConfig {
	audioFormat := DefaultAudioFormat
	audioQuality := DefaultAudioQuality
	var quiet, noWarnings, ignoreErrors bool
	if config != nil {
		if config.AudioFormat != "" {
			audioFormat = config.AudioFormat
		}
		if config.AudioQuality != "" {
			audioQuality = config.AudioQuality
		}
		quiet = config.Quiet
		noWarnings = config.NoWarnings
		ignoreErrors = config.IgnoreErrors
	}

	return DownloadConfig{
		Format:         bestAudioFormat,
		ExtractAudio:   true,
		AudioFormat:    audioFormat,
		AudioQuality:   audioQuality,
		EmbedMetadata:  true,
		OutputDir:      outputDir,
		OutputTemplate: filepath.Join(outputDir, titleTemplate),
		Quiet:          quiet,
		NoWarnings:     noWarnings,
		IgnoreErrors:   ignoreErrors,
	}
}

// Status is the outcome class of a run
type Status int

const (
	StatusSuccess Status = iota
	StatusNotPlaylist
	StatusUsageError
	StatusFailure
)

// String returns a human-readable representation of the status
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNotPlaylist:
		return "not-playlist"
	case StatusUsageError:
		return "usage-error"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ExitCode maps a status to the process exit code
func (s Status) ExitCode() int {
	switch s {
	case StatusSuccess, StatusNotPlaylist:
		return 0
	default:
		return 1
	}
}

// Result reports what a run did
type Result struct {
	Status    Status
	Total     int
	OutputDir string
	Err       error
}

var (
	ErrUsage       = errors.New("playlist URL is required")
	ErrNotPlaylist = errors.New("this doesn't appear to be a valid playlist URL")
)
