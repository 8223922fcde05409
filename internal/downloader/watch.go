package downloader

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchFolder reports every file that appears in dir while a download runs.
// yt-dlp may write several files for a multi-part playlist; the watch gives
// the observer one progress line per finished artifact. The returned stop
// function closes the watcher and must always be called.
func (d *implDownloader) watchFolder(ctx context.Context, dir string, onProgress func(string)) func() {
	if onProgress == nil {
		return func() {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		d.logger.Warn(ctx, "Folder watch unavailable: %v", err)
		return func() {}
	}
	if err := watcher.Add(dir); err != nil {
		d.logger.Warn(ctx, "Cannot watch %s: %v", dir, err)
		watcher.Close()
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Create == fsnotify.Create {
					onProgress("new file: " + filepath.Base(event.Name))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				d.logger.Debug(ctx, "Folder watch error: %v", err)
			}
		}
	}()

	return func() {
		watcher.Close()
		<-done
	}
}
