package acquire

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/audio-note/internal/mediaurl"
	"github.com/nguyentantai21042004/audio-note/internal/session"
)

// Acquire runs the full acquisition flow for one URL.
func (a *implAcquirer) Acquire(ctx context.Context, rawURL string, item int, onProgress func(string)) (*session.Session, error) {
	report := func(msg string) {
		if onProgress != nil {
			onProgress(msg)
		}
	}

	// No network activity for rejected URLs.
	if !mediaurl.Validate(rawURL) {
		return nil, ErrUnsupportedURL
	}

	sess := &session.Session{
		URL:      rawURL,
		CleanURL: mediaurl.Normalize(rawURL),
	}
	a.logger.Info(ctx, "Starting acquisition: %s", sess.CleanURL)
	report("resolving video info...")

	title, err := a.downloader.ResolveTitle(ctx, sess.CleanURL)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	if title == "" {
		return nil, fmt.Errorf("title unresolved for %s", sess.CleanURL)
	}
	sess.Title = title
	report("title: " + title)

	folder, err := a.store.EnsureFolder(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("prepare session folder: %w", err)
	}
	sess.Folder = folder
	report("downloading into " + folder)

	if err := a.downloader.Download(ctx, sess.CleanURL, folder, item, onProgress); err != nil {
		// Files written before the failure stay on disk.
		return nil, &FetchError{Err: err}
	}

	files, err := session.ListFiles(folder)
	if err != nil {
		return nil, fmt.Errorf("enumerate session files: %w", err)
	}
	sess.Files = files

	if err := a.store.Record(ctx, rawURL, title); err != nil {
		// History is best effort; the artifacts already exist.
		a.logger.Warn(ctx, "Failed to record history for %s: %v", rawURL, err)
	}

	a.logger.Info(ctx, "Acquisition complete: %d files in %s", len(files), folder)
	report(fmt.Sprintf("done: %d files", len(files)))
	return sess, nil
}
