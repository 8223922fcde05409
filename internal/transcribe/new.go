package transcribe

import (
	"sync"

	"github.com/nguyentantai21042004/audio-note/internal/logger"
)

// engineEntry holds one cached engine. Its mutex guards both lazy
// construction (no double-loading a variant) and inference: a loaded engine
// runs one transcription at a time. Same-variant callers therefore serialize
// on the entry; different variants run concurrently on their own entries.
type engineEntry struct {
	mu     sync.Mutex
	engine Engine
}

type implTranscriber struct {
	loader Loader
	logger logger.Logger

	mu      sync.Mutex
	entries map[string]*engineEntry
}

// New creates the transcription stage. Engines loaded through loader are
// cached per model variant for the life of the stage.
func New(loader Loader, log logger.Logger) Transcriber {
	return &implTranscriber{
		loader:  loader,
		logger:  log,
		entries: make(map[string]*engineEntry),
	}
}
