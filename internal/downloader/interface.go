package downloader

import "context"

// Downloader is the media fetch capability: resolve a title without
// downloading, or download the best audio stream into a directory and
// transcode it to mp3.
type Downloader interface {
	// ResolveTitle fetches metadata only; no media is downloaded.
	ResolveTitle(ctx context.Context, url string) (string, error)

	// Download fetches audio into destDir. item selects a single 1-based
	// playlist item; zero or negative downloads all items. onProgress, when
	// non-nil, receives human-readable progress lines.
	Download(ctx context.Context, url, destDir string, item int, onProgress func(string)) error
}
