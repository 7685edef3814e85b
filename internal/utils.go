package internal

import (
	"net/url"
	"os"
	"regexp"
	"strings"

	"golang.org/x/term"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ParseArg normalizes a playlist reference. Bare playlist IDs become playlist URLs,
// everything else is passed through for the backend to judge.
func ParseArg(arg string) string {
	arg = strings.TrimSpace(arg)
	if IsValidPlaylistID(arg) {
		return "https://www.youtube.com/playlist?list=" + arg
	}
	return arg
}

// IsValidPlaylistID checks if a string looks like a valid YouTube playlist ID
func IsValidPlaylistID(id string) bool {
	// Common playlist prefixes: PL, UU, FL, RD, etc.
	playlistPrefixes := []string{"PL", "UU", "FL", "RD", "LP", "BP", "QL", "SV", "EL", "LL", "UC"}

	for _, prefix := range playlistPrefixes {
		if strings.HasPrefix(id, prefix) {
			if len(id) == 18 || len(id) == 34 || len(id) == 36 {
				return idPattern.MatchString(id)
			}
		}
	}

	// Music playlists (OLAK5uy_, RDCLAK5uy_)
	if strings.HasPrefix(id, "OLAK5uy_") || strings.HasPrefix(id, "RDCLAK5uy_") {
		if len(id) == 40 || len(id) == 41 {
			return idPattern.MatchString(id)
		}
	}

	return false
}

// IsLikelyCommand reports whether arg is a mistyped subcommand: something close to a
// command name (see cobra's SuggestionsFor) that cannot be a URL or playlist ID
func IsLikelyCommand(arg string, suggestions []string) bool {
	if len(suggestions) == 0 {
		return false
	}
	if strings.Contains(arg, "://") || strings.Contains(arg, ".") || strings.Contains(arg, "/") {
		return false
	}
	return !IsValidPlaylistID(arg)
}

// PlaylistID extracts the list= parameter from a playlist URL, if any
func PlaylistID(reference string) string {
	u, err := url.Parse(strings.TrimSpace(reference))
	if err != nil {
		return ""
	}
	return u.Query().Get("list")
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories (and parents) if needed
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// getTerminalWidth gets terminal width with fallback
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}

	if width > 10 {
		return width - 4
	}

	return width
}
