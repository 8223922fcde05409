package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// maxHistoryEntries bounds the persisted download history.
const maxHistoryEntries = 20

// HistoryEntry is one line of the recent-download history.
type HistoryEntry struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

// Record inserts an entry at the front, dropping any existing entry with the
// same URL, trims to the bound and rewrites the whole history file.
func (s *implStore) Record(ctx context.Context, url, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := HistoryEntry{
		URL:       url,
		Title:     title,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	}

	kept := make([]HistoryEntry, 0, len(s.history)+1)
	kept = append(kept, entry)
	for _, e := range s.history {
		if e.URL == url {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) > maxHistoryEntries {
		kept = kept[:maxHistoryEntries]
	}
	s.history = kept

	data, err := json.MarshalIndent(s.history, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.WriteFile(s.historyFile, data, 0644); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}

	s.logger.Debug(ctx, "History updated: %d entries", len(s.history))
	return nil
}

// Entries returns a copy of the history, most recent first.
func (s *implStore) Entries() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// loadHistory reads the history file. Missing or malformed files leave the
// history empty rather than failing startup.
func (s *implStore) loadHistory() {
	data, err := os.ReadFile(s.historyFile)
	if err != nil {
		return
	}

	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return
	}
	if len(entries) > maxHistoryEntries {
		entries = entries[:maxHistoryEntries]
	}
	s.history = entries
}
