package downloader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveTitle asks yt-dlp for the title of the first item without
// downloading any media.
func (d *implDownloader) ResolveTitle(ctx context.Context, url string) (string, error) {
	args := []string{
		"--no-warnings",
		"--skip-download",
		"--playlist-items", "1",
		"--print", "%(title)s",
		url,
	}

	out, err := d.executor.Execute(ctx, "yt-dlp", args...)
	if err != nil {
		return "", fmt.Errorf("resolve title: %w", err)
	}

	title := strings.TrimSpace(out)
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = strings.TrimSpace(title[:i])
	}
	return title, nil
}

// Download fetches the best audio-bearing stream into destDir and extracts
// mp3 via ffmpeg. Files already written before a failure stay on disk.
func (d *implDownloader) Download(ctx context.Context, url, destDir string, item int, onProgress func(string)) error {
	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", d.audioQuality,
		"--ffmpeg-location", d.ffmpegPath,
		"--socket-timeout", "30",
		"--retries", "3",
		"--newline",
		"-o", filepath.Join(destDir, "%(title)s.%(ext)s"),
	}
	if item > 0 {
		args = append(args, "--playlist-items", fmt.Sprintf("%d:%d", item, item))
	}
	args = append(args, url)

	// Report files materializing in the session folder alongside yt-dlp's
	// own output. Best effort: a failed watch never fails the download.
	stopWatch := d.watchFolder(ctx, destDir, onProgress)
	defer stopWatch()

	err := d.executor.ExecuteStream(ctx, func(line string) {
		if onProgress == nil {
			return
		}
		if strings.HasPrefix(line, "[download]") || strings.HasPrefix(line, "[ExtractAudio]") {
			onProgress(line)
		} else {
			d.logger.Debug(ctx, "yt-dlp: %s", line)
		}
	}, "yt-dlp", args...)
	if err != nil {
		return fmt.Errorf("download audio: %w", err)
	}

	return nil
}
