package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/audio-note/internal/logger"
	pkgexec "github.com/nguyentantai21042004/audio-note/pkg/executor"
)

// whisperLoader builds engines backed by the whisper.cpp CLI. Model files
// are expected as <modelDir>/ggml-<variant>.bin.
type whisperLoader struct {
	executor   pkgexec.Executor
	logger     logger.Logger
	binaryPath string
	modelDir   string
	language   string
	threads    int
}

// NewWhisperLoader creates a Loader that runs the whisper.cpp binary through
// the executor.
func NewWhisperLoader(exec pkgexec.Executor, log logger.Logger, binaryPath, modelDir, language string, threads int) Loader {
	if language == "" {
		language = "auto"
	}
	if threads <= 0 {
		threads = 4
	}
	return &whisperLoader{
		executor:   exec,
		logger:     log,
		binaryPath: binaryPath,
		modelDir:   modelDir,
		language:   language,
		threads:    threads,
	}
}

func (l *whisperLoader) Load(ctx context.Context, variant string) (Engine, error) {
	modelPath := filepath.Join(l.modelDir, "ggml-"+variant+".bin")
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file %s: %w", modelPath, err)
	}

	return &whisperEngine{
		loader:    l,
		modelPath: modelPath,
	}, nil
}

type whisperEngine struct {
	loader    *whisperLoader
	modelPath string
}

// Run invokes whisper-cli with JSON output and parses the timed segments.
func (e *whisperEngine) Run(ctx context.Context, audioPath string) ([]Segment, Info, error) {
	l := e.loader

	outDir, err := os.MkdirTemp("", "audionote-whisper-")
	if err != nil {
		return nil, Info{}, fmt.Errorf("create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)
	outputPrefix := filepath.Join(outDir, "transcript")

	// -m: model path, -f: input audio, -oj: JSON output,
	// -l: language (auto-detect by default), -t: threads
	args := []string{
		"-m", e.modelPath,
		"-f", audioPath,
		"-oj",
		"-l", l.language,
		"-t", strconv.Itoa(l.threads),
		"--output-file", outputPrefix,
	}

	if _, err := l.executor.Execute(ctx, l.binaryPath, args...); err != nil {
		return nil, Info{}, fmt.Errorf("whisper run: %w", err)
	}

	data, err := os.ReadFile(outputPrefix + ".json")
	if err != nil {
		return nil, Info{}, fmt.Errorf("read whisper output: %w", err)
	}

	return parseWhisperJSON(data)
}

// whisperOutput mirrors the relevant parts of whisper.cpp's -oj document.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"` // milliseconds
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func parseWhisperJSON(data []byte) ([]Segment, Info, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, Info{}, fmt.Errorf("parse whisper output: %w", err)
	}

	segments := make([]Segment, 0, len(out.Transcription))
	var duration float64
	for _, seg := range out.Transcription {
		end := float64(seg.Offsets.To) / 1000.0
		segments = append(segments, Segment{
			Text: seg.Text,
			End:  end,
		})
		if end > duration {
			duration = end
		}
	}

	info := Info{
		Language: strings.TrimSpace(out.Result.Language),
		Duration: duration,
	}
	return segments, info, nil
}
