package internal

import (
	"context"

	"github.com/lrstanley/go-ytdlp"
)

// DependencyReport describes the external tools a download needs
type DependencyReport struct {
	YTDLPFound    bool
	YTDLPPath     string
	FFmpegFound   bool
	FFmpegPath    string
	FFmpegVersion string
	FFprobeFound  bool
	FFprobePath   string
}

// OK reports whether every dependency was found
func (r DependencyReport) OK() bool {
	return r.YTDLPFound && r.FFmpegFound && r.FFprobeFound
}

// ResolveYTDLP finds an existing yt-dlp in the go-ytdlp cache dir or on PATH without
// downloading one
func ResolveYTDLP(ctx context.Context) (string, error) {
	resolved, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{DisableDownload: true})
	if err != nil {
		return "", err
	}
	return resolved.Executable, nil
}

// DependencyStatus resolves yt-dlp, ffmpeg and ffprobe
func DependencyStatus(ctx context.Context, resolveYTDLP func(context.Context) (string, error), transcoder *Transcoder) DependencyReport {
	report := DependencyReport{}
	if path, err := resolveYTDLP(ctx); err == nil {
		report.YTDLPFound = true
		report.YTDLPPath = path
	}
	if path, err := transcoder.Path(ctx); err == nil {
		report.FFmpegPath = path
		if version, err := transcoder.Version(ctx); err == nil {
			report.FFmpegFound = true
			report.FFmpegVersion = version
		}
	}
	if path, err := transcoder.ProbePath(ctx); err == nil {
		report.FFprobeFound = true
		report.FFprobePath = path
	}
	return report
}
