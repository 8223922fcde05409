package acquire

import (
	"github.com/nguyentantai21042004/audio-note/internal/downloader"
	"github.com/nguyentantai21042004/audio-note/internal/logger"
	"github.com/nguyentantai21042004/audio-note/internal/session"
)

type implAcquirer struct {
	downloader downloader.Downloader
	store      session.Store
	logger     logger.Logger
}

// New creates the acquisition stage over the given fetch capability and
// session store.
func New(dl downloader.Downloader, store session.Store, log logger.Logger) Acquirer {
	return &implAcquirer{
		downloader: dl,
		store:      store,
		logger:     log,
	}
}
