package session

import (
	"sync"

	"github.com/nguyentantai21042004/audio-note/internal/logger"
)

type implStore struct {
	baseDir     string
	historyFile string
	logger      logger.Logger

	mu      sync.Mutex
	history []HistoryEntry
}

// New creates a Store rooted at baseDir, persisting history to historyFile.
// An existing history file is loaded; a corrupt or missing one starts empty.
func New(baseDir, historyFile string, log logger.Logger) Store {
	s := &implStore{
		baseDir:     baseDir,
		historyFile: historyFile,
		logger:      log,
	}
	s.loadHistory()
	return s
}
