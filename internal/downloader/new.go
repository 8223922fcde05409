package downloader

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/nguyentantai21042004/audio-note/internal/logger"
	pkgexec "github.com/nguyentantai21042004/audio-note/pkg/executor"
)

type implDownloader struct {
	executor     pkgexec.Executor
	logger       logger.Logger
	ffmpegPath   string
	audioQuality string
}

// New creates a Downloader. ffmpegOverride, when non-empty, skips discovery.
// Construction fails fast when no working ffmpeg can be located: mp3
// transcoding is a post-processing step of every download, so a missing
// toolchain is not a per-call error.
func New(exec pkgexec.Executor, log logger.Logger, ffmpegOverride, audioQuality string) (Downloader, error) {
	ffmpegPath := ffmpegOverride
	if ffmpegPath == "" {
		ffmpegPath = findFFmpeg()
	}
	if ffmpegPath == "" {
		return nil, fmt.Errorf(
			"ffmpeg not found: install it (e.g. brew install ffmpeg) or set FFMPEG_PATH to the executable")
	}

	if audioQuality == "" {
		audioQuality = "192K"
	}

	return &implDownloader{
		executor:     exec,
		logger:       log,
		ffmpegPath:   ffmpegPath,
		audioQuality: audioQuality,
	}, nil
}

// findFFmpeg probes, in priority order: the FFMPEG_PATH environment variable,
// $PATH, common install locations, and the directory of the running binary.
func findFFmpeg() string {
	var candidates []string

	if env := os.Getenv("FFMPEG_PATH"); env != "" {
		candidates = append(candidates, env)
	}

	if p, err := exec.LookPath("ffmpeg"); err == nil {
		candidates = append(candidates, p)
	}

	candidates = append(candidates,
		"/opt/homebrew/bin/ffmpeg",
		"/usr/local/bin/ffmpeg",
		"/usr/bin/ffmpeg",
	)

	if self, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(self), "ffmpeg"))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			return c
		}
	}
	return ""
}
