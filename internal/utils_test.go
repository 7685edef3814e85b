package internal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArg(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.youtube.com/playlist?list=PLabc", "https://www.youtube.com/playlist?list=PLabc"},
		{"  https://music.youtube.com/playlist?list=OLAK5uy_x  ", "https://music.youtube.com/playlist?list=OLAK5uy_x"},
		{"PLabcdefghijklmnop", "https://www.youtube.com/playlist?list=PLabcdefghijklmnop"},
		{"https://soundcloud.com/user/sets/mix", "https://soundcloud.com/user/sets/mix"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseArg(tt.in), "input %q", tt.in)
	}
}

func TestIsValidPlaylistID(t *testing.T) {
	assert.True(t, IsValidPlaylistID("PLabcdefghijklmnop"))
	assert.True(t, IsValidPlaylistID("PL9tY0BWXOZFuFEG_GtOBZ8-8wbkH-NVAr"))
	assert.False(t, IsValidPlaylistID("PLshort"))
	assert.False(t, IsValidPlaylistID("dQw4w9WgXcQ"))
	assert.False(t, IsValidPlaylistID("PLabcdefghijklm!op"))
}

func TestIsLikelyCommand(t *testing.T) {
	assert.True(t, IsLikelyCommand("doctr", []string{"doctor"}))
	assert.True(t, IsLikelyCommand("verison", []string{"version"}))
	assert.False(t, IsLikelyCommand("mixtape", nil), "short references go to the backend")
	assert.False(t, IsLikelyCommand("https://youtube.com/playlist?list=PLx", []string{"info"}))
	assert.False(t, IsLikelyCommand("PLabcdefghijklmnop", []string{"paths"}))
	assert.False(t, IsLikelyCommand("youtu.be", []string{"version"}))
}

func TestPlaylistID(t *testing.T) {
	assert.Equal(t, "PLabc", PlaylistID("https://www.youtube.com/playlist?list=PLabc"))
	assert.Equal(t, "PLabc", PlaylistID("https://www.youtube.com/watch?v=x&list=PLabc"))
	assert.Equal(t, "", PlaylistID("https://soundcloud.com/user/sets/mix"))
}

func TestEnsureDirs(t *testing.T) {
	base := t.TempDir()
	a := filepath.Join(base, "a", "b")
	c := filepath.Join(base, "c")

	require.NoError(t, EnsureDirs(a, c))
	require.NoError(t, EnsureDirs(a, c))
	assert.DirExists(t, a)
	assert.DirExists(t, c)
	assert.True(t, FileExists(a))
	assert.False(t, FileExists(filepath.Join(base, "missing")))
}
