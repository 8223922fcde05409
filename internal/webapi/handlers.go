package webapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nguyentantai21042004/audio-note/internal/acquire"
	"github.com/nguyentantai21042004/audio-note/internal/logger"
	"github.com/nguyentantai21042004/audio-note/internal/session"
)

// AcquirerFactory returns an acquisition stage rooted at downloadDir. An
// empty downloadDir selects the configured default directory.
type AcquirerFactory func(downloadDir string) (acquire.Acquirer, error)

// Handlers holds the HTTP handler methods for the web API. The API is a
// thin adapter: decode the request, call the stage, encode the result.
type Handlers struct {
	newAcquirer AcquirerFactory
	store       session.Store
	logger      logger.Logger
}

// NewHandlers creates a Handlers over the given stage factory and history
// store.
func NewHandlers(factory AcquirerFactory, store session.Store, log logger.Logger) *Handlers {
	return &Handlers{
		newAcquirer: factory,
		store:       store,
		logger:      log,
	}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleHistory returns the recent-download history, most recent first.
func (h *Handlers) HandleHistory(w http.ResponseWriter, _ *http.Request) {
	entries := h.store.Entries()
	if entries == nil {
		entries = []session.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{History: entries})
}

// HandleProcessVideo runs the acquisition stage synchronously for one URL
// and reports the produced files.
func (h *Handlers) HandleProcessVideo(w http.ResponseWriter, r *http.Request) {
	var req ProcessVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	acquirer, err := h.newAcquirer(req.DownloadDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ProcessVideoResponse{Error: err.Error()})
		return
	}

	ctx := r.Context()
	h.logger.Info(ctx, "processing video request: %s", req.URL)

	sess, err := acquirer.Acquire(ctx, req.URL, req.PageNumber, func(msg string) {
		h.logger.Debug(ctx, "acquire progress: %s", msg)
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, acquire.ErrUnsupportedURL) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, ProcessVideoResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ProcessVideoResponse{
		Success:       true,
		Files:         sess.Files,
		SessionFolder: sess.Folder,
		VideoTitle:    sess.Title,
	})
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, factory AcquirerFactory, store session.Store, log logger.Logger) {
	h := NewHandlers(factory, store, log)
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET /api/history", h.HandleHistory)
	mux.HandleFunc("POST /api/process/video", h.HandleProcessVideo)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
