package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotFound is returned when the audio file does not exist on disk.
var ErrNotFound = errors.New("audio file not found")

// progressStepSeconds is the minimum advance of processed audio time between
// two progress reports, bounding callback frequency on long audio.
const progressStepSeconds = 5.0

// Transcribe runs speech-to-text on audioPath using the given model variant.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath, variant string, onProgress func(string)) (Result, error) {
	report := func(msg string) {
		if onProgress != nil {
			onProgress(msg)
		}
	}

	if _, err := os.Stat(audioPath); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, audioPath)
	}

	entry := t.entryFor(variant)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.engine == nil {
		report(fmt.Sprintf("loading model (%s)...", variant))
		t.logger.Info(ctx, "Loading transcription engine: %s", variant)

		engine, err := t.loader.Load(ctx, variant)
		if err != nil {
			// Load failures are not cached; the next call retries.
			return Result{}, fmt.Errorf("load engine %s: %w", variant, err)
		}
		entry.engine = engine
	}

	segments, info, err := entry.engine.Run(ctx, audioPath)
	if err != nil {
		return Result{}, fmt.Errorf("transcription engine: %w", err)
	}

	var lines []string
	lastReported := 0.0
	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			lines = append(lines, text)
		}
		if seg.End > 0 && seg.End-lastReported >= progressStepSeconds {
			lastReported = seg.End
			report(fmt.Sprintf("processed %.1f seconds of audio", seg.End))
		}
	}

	result := Result{
		Text:     strings.TrimSpace(strings.Join(lines, "\n")),
		Language: info.Language,
		Model:    variant,
	}
	if result.Language == "" {
		result.Language = "unknown"
	}
	if info.Duration > 0 {
		result.Duration = fmt.Sprintf("%.1fs", info.Duration)
	}

	t.logger.Info(ctx, "Transcription complete: %s, language=%s, duration=%s",
		audioPath, result.Language, result.Duration)
	return result, nil
}

// entryFor returns the cache entry for a variant, creating it if needed.
func (t *implTranscriber) entryFor(variant string) *engineEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[variant]
	if !ok {
		entry = &engineEntry{}
		t.entries[variant] = entry
	}
	return entry
}
