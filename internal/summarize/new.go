package summarize

import (
	"github.com/nguyentantai21042004/audio-note/internal/completion"
	"github.com/nguyentantai21042004/audio-note/internal/logger"
)

type implSummarizer struct {
	service   completion.Service
	logger    logger.Logger
	chunkSize int
}

// New creates the summarization stage over the given completion service.
// chunkSize is the character count per chunk, clamped to a minimum of 1.
func New(service completion.Service, log logger.Logger, chunkSize int) Summarizer {
	if chunkSize < 1 {
		chunkSize = 1
	}
	return &implSummarizer{
		service:   service,
		logger:    log,
		chunkSize: chunkSize,
	}
}
