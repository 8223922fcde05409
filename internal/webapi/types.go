package webapi

import "github.com/nguyentantai21042004/audio-note/internal/session"

// ProcessVideoRequest is the body of POST /api/process/video.
type ProcessVideoRequest struct {
	URL         string `json:"url"`
	PageNumber  int    `json:"page_number"`
	DownloadDir string `json:"download_dir"`
}

// ProcessVideoResponse reports the outcome of one acquisition run.
type ProcessVideoResponse struct {
	Success       bool     `json:"success"`
	Files         []string `json:"files,omitempty"`
	SessionFolder string   `json:"session_folder,omitempty"`
	VideoTitle    string   `json:"video_title,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status string `json:"status"`
}

// HistoryResponse is the GET /api/history body.
type HistoryResponse struct {
	History []session.HistoryEntry `json:"history"`
}

// ErrorResponse is the uniform error body for malformed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
