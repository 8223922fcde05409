package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Session identifies one acquisition run for a single source URL. It is
// created by the acquisition stage and never touched by later stages.
type Session struct {
	URL      string   // original input
	CleanURL string   // normalized URL, tracking parameters stripped
	Title    string   // resolved media title
	Folder   string   // absolute session folder path
	Files    []string // absolute paths produced by the download, discovery order
}

// fallbackFolderName is used when a title sanitizes to nothing.
const fallbackFolderName = "downloaded_content"

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\n\r\t]`)

// SanitizeTitle turns a media title into a safe folder name: path separators
// and control characters become underscores, and an empty result falls back
// to a fixed placeholder.
func SanitizeTitle(title string) string {
	sanitized := strings.TrimSpace(invalidFilenameChars.ReplaceAllString(title, "_"))
	if sanitized == "" {
		return fallbackFolderName
	}
	return sanitized
}

// EnsureFolder creates the sanitized session folder under the base dir. A
// pre-existing folder is reused, not an error.
func (s *implStore) EnsureFolder(ctx context.Context, title string) (string, error) {
	folder := filepath.Join(s.baseDir, SanitizeTitle(title))

	abs, err := filepath.Abs(folder)
	if err != nil {
		return "", fmt.Errorf("resolve session folder: %w", err)
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", fmt.Errorf("create session folder: %w", err)
	}

	s.logger.Debug(ctx, "Session folder ready: %s", abs)
	return abs, nil
}

// ListFiles enumerates the regular files directly inside dir (non-recursive),
// in directory order.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read session folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
