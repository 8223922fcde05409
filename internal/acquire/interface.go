package acquire

import (
	"context"

	"github.com/nguyentantai21042004/audio-note/internal/session"
)

// Acquirer turns a supported video URL into a session folder holding the
// extracted audio files.
type Acquirer interface {
	// Acquire validates and normalizes rawURL, resolves the media title,
	// creates the session folder, downloads the audio and enumerates the
	// resulting files. item restricts the download to one 1-based playlist
	// item; zero means all items. A failed acquisition may leave partial
	// files in the session folder; nothing is rolled back.
	Acquire(ctx context.Context, rawURL string, item int, onProgress func(string)) (*session.Session, error)
}
