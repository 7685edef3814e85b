package internal

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/lrstanley/go-ytdlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	output []byte
	err    error
	calls  [][]string
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.output, r.err
}

func foundAt(path string) resolver {
	return func(context.Context) (string, error) { return path, nil }
}

func notFound(context.Context) (string, error) {
	return "", errors.New("executable not found")
}

func TestTranscoderVersion(t *testing.T) {
	runner := &fakeRunner{output: []byte("ffmpeg version 7.1 Copyright (c) 2000-2024\nbuilt with gcc\n")}
	tc := &Transcoder{cmdRunner: runner, resolve: foundAt("/opt/ffmpeg"), resolveProbe: foundAt("/opt/ffprobe")}

	version, err := tc.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ffmpeg version 7.1 Copyright (c) 2000-2024", version)
	assert.Equal(t, [][]string{{"/opt/ffmpeg", "-hide_banner", "-version"}}, runner.calls)
	assert.NoError(t, tc.Check(context.Background()))
}

func TestTranscoderMissing(t *testing.T) {
	runner := &fakeRunner{}
	tc := &Transcoder{cmdRunner: runner, resolve: notFound, resolveProbe: foundAt("/opt/ffprobe")}

	err := tc.Check(context.Background())
	assert.ErrorIs(t, err, ErrFFmpegNotFound)
	assert.Empty(t, runner.calls, "ffmpeg must not be run when it cannot be resolved")
}

func TestTranscoderMissingProbe(t *testing.T) {
	runner := &fakeRunner{output: []byte("ffmpeg version 7.1\n")}
	tc := &Transcoder{cmdRunner: runner, resolve: foundAt("/opt/ffmpeg"), resolveProbe: notFound}

	assert.ErrorIs(t, tc.Check(context.Background()), ErrFFmpegNotFound)
}

func TestTranscoderBroken(t *testing.T) {
	runner := &fakeRunner{output: []byte("segfault"), err: errors.New("exit status 139")}
	tc := &Transcoder{cmdRunner: runner, resolve: foundAt("/opt/ffmpeg"), resolveProbe: foundAt("/opt/ffprobe")}

	err := tc.Check(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFFmpegNotFound)
	assert.Contains(t, err.Error(), "checking ffmpeg")
}

// writeExecutable writes a shell script named name into dir
func writeExecutable(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))
	return path
}

func TestTranscoderFindsCachedFFmpeg(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script executables")
	}
	// ffmpeg only in the go-ytdlp cache dir, nothing on PATH
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("PATH", t.TempDir())
	cacheDir, err := ytdlp.GetCacheDir()
	require.NoError(t, err)
	if !strings.HasPrefix(cacheDir, cacheHome) {
		t.Skip("go-ytdlp cache dir does not follow XDG_CACHE_HOME")
	}
	require.NoError(t, os.MkdirAll(cacheDir, 0755))
	ffmpeg := writeExecutable(t, cacheDir, "ffmpeg", "echo 'ffmpeg version 7.1'\n")
	writeExecutable(t, cacheDir, "ffprobe", "echo 'ffprobe version 7.1'\n")

	tc := NewTranscoder(&DefaultCommandRunner{}, false)

	path, err := tc.Path(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ffmpeg, path)
	assert.NoError(t, tc.Check(context.Background()))
}

func TestDependencyStatus(t *testing.T) {
	tc := &Transcoder{
		cmdRunner:    &fakeRunner{output: []byte("ffmpeg version 7.1\n")},
		resolve:      foundAt("/opt/ffmpeg"),
		resolveProbe: foundAt("/opt/ffprobe"),
	}

	report := DependencyStatus(context.Background(), foundAt("/opt/yt-dlp"), tc)
	assert.True(t, report.OK())
	assert.Equal(t, "/opt/yt-dlp", report.YTDLPPath)
	assert.Equal(t, "/opt/ffmpeg", report.FFmpegPath)
	assert.Equal(t, "ffmpeg version 7.1", report.FFmpegVersion)
	assert.Equal(t, "/opt/ffprobe", report.FFprobePath)
}

func TestDependencyStatusWithoutFFmpeg(t *testing.T) {
	tc := &Transcoder{cmdRunner: &fakeRunner{}, resolve: notFound, resolveProbe: notFound}

	report := DependencyStatus(context.Background(), notFound, tc)
	assert.False(t, report.YTDLPFound)
	assert.False(t, report.FFmpegFound)
	assert.False(t, report.FFprobeFound)
	assert.False(t, report.OK())
}
