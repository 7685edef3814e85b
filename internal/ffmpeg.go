package internal

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lrstanley/go-ytdlp"
)

// ErrFFmpegNotFound is returned when audio extraction is requested without ffmpeg
var ErrFFmpegNotFound = errors.New("ffmpeg not found: install ffmpeg and make sure it is on PATH")

// resolver locates an external executable
type resolver func(ctx context.Context) (string, error)

// Transcoder checks the external transcoding tools yt-dlp hands audio extraction to
type Transcoder struct {
	cmdRunner    CommandRunner
	resolve      resolver
	resolveProbe resolver
}

// NewTranscoder resolves ffmpeg and ffprobe the way go-ytdlp does: its cache dir first,
// then PATH. With autoInstall a missing binary is downloaded into the cache dir.
func NewTranscoder(cmdRunner CommandRunner, autoInstall bool) *Transcoder {
	return &Transcoder{
		cmdRunner: cmdRunner,
		resolve: func(ctx context.Context) (string, error) {
			resolved, err := ytdlp.InstallFFmpeg(ctx, &ytdlp.InstallFFmpegOptions{DisableDownload: !autoInstall})
			if err != nil {
				return "", err
			}
			return resolved.Executable, nil
		},
		resolveProbe: func(ctx context.Context) (string, error) {
			resolved, err := ytdlp.InstallFFprobe(ctx, &ytdlp.InstallFFmpegOptions{DisableDownload: !autoInstall})
			if err != nil {
				return "", err
			}
			return resolved.Executable, nil
		},
	}
}

// Path returns the resolved ffmpeg binary
func (t *Transcoder) Path(ctx context.Context) (string, error) {
	path, err := t.resolve(ctx)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "resolving ffmpeg"), ErrFFmpegNotFound)
	}
	return path, nil
}

// ProbePath returns the resolved ffprobe binary
func (t *Transcoder) ProbePath(ctx context.Context) (string, error) {
	path, err := t.resolveProbe(ctx)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "resolving ffprobe"), ErrFFmpegNotFound)
	}
	return path, nil
}

// Version returns the first line of `ffmpeg -version`
func (t *Transcoder) Version(ctx context.Context) (string, error) {
	path, err := t.Path(ctx)
	if err != nil {
		return "", err
	}

	output, err := t.cmdRunner.Run(ctx, path, "-hide_banner", "-version")
	if err != nil {
		return "", errors.Wrapf(err, "ffmpeg failed\nOutput: %s", string(output))
	}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	return "", errors.New("ffmpeg printed no version")
}

// Check fails with ErrFFmpegNotFound when ffmpeg or ffprobe cannot be found
func (t *Transcoder) Check(ctx context.Context) error {
	if _, err := t.Version(ctx); err != nil {
		if errors.Is(err, ErrFFmpegNotFound) {
			return ErrFFmpegNotFound
		}
		return errors.Wrap(err, "checking ffmpeg")
	}
	if _, err := t.ProbePath(ctx); err != nil {
		return ErrFFmpegNotFound
	}
	return nil
}
