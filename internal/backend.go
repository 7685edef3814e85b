package internal

import "context"

// Backend is the media-extraction/transcoding service a run drives
type Backend interface {
	// Probe resolves a reference to its metadata without downloading or writing anything
	Probe(ctx context.Context, reference string) (*PlaylistInfo, error)

	// Fetch downloads and post-processes every resolvable entry of reference
	Fetch(ctx context.Context, reference string, cfg DownloadConfig) error
}
