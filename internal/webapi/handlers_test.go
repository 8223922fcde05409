package webapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/audio-note/internal/acquire"
	"github.com/nguyentantai21042004/audio-note/internal/logger"
	"github.com/nguyentantai21042004/audio-note/internal/session"
)

type fakeAcquirer struct {
	sess    *session.Session
	err     error
	gotURL  string
	gotItem int
}

func (f *fakeAcquirer) Acquire(ctx context.Context, rawURL string, item int, onProgress func(string)) (*session.Session, error) {
	f.gotURL = rawURL
	f.gotItem = item
	if f.err != nil {
		return nil, f.err
	}
	return f.sess, nil
}

type fakeStore struct {
	entries []session.HistoryEntry
}

func (f *fakeStore) EnsureFolder(ctx context.Context, title string) (string, error) {
	return "/tmp/" + title, nil
}

func (f *fakeStore) Record(ctx context.Context, url, title string) error { return nil }

func (f *fakeStore) Entries() []session.HistoryEntry { return f.entries }

func newTestMux(acq *fakeAcquirer, store session.Store) *http.ServeMux {
	factory := func(downloadDir string) (acquire.Acquirer, error) { return acq, nil }
	mux := http.NewServeMux()
	RegisterRoutes(mux, factory, store, logger.New("error"))
	return mux
}

func TestHandleHealth(t *testing.T) {
	mux := newTestMux(&fakeAcquirer{}, &fakeStore{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestHandleHistory(t *testing.T) {
	store := &fakeStore{entries: []session.HistoryEntry{
		{URL: "https://youtube.com/watch?v=b", Title: "newer"},
		{URL: "https://youtube.com/watch?v=a", Title: "older"},
	}}
	mux := newTestMux(&fakeAcquirer{}, store)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HistoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.History) != 2 || resp.History[0].Title != "newer" {
		t.Errorf("history = %+v", resp.History)
	}
}

func TestHandleHistoryEmpty(t *testing.T) {
	mux := newTestMux(&fakeAcquirer{}, &fakeStore{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	if !strings.Contains(rec.Body.String(), `"history":[]`) {
		t.Errorf("empty history must encode as [], got %s", rec.Body.String())
	}
}

func TestHandleProcessVideoSuccess(t *testing.T) {
	acq := &fakeAcquirer{sess: &session.Session{
		Title:  "My Video",
		Folder: "/downloads/My Video",
		Files:  []string{"/downloads/My Video/My Video.mp3"},
	}}
	mux := newTestMux(acq, &fakeStore{})

	body := `{"url":"https://www.youtube.com/watch?v=abc","page_number":2}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/process/video", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp ProcessVideoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.VideoTitle != "My Video" || resp.SessionFolder != "/downloads/My Video" {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Files) != 1 {
		t.Errorf("files = %v", resp.Files)
	}
	if acq.gotURL != "https://www.youtube.com/watch?v=abc" || acq.gotItem != 2 {
		t.Errorf("acquirer got url=%q item=%d", acq.gotURL, acq.gotItem)
	}
}

func TestHandleProcessVideoUnsupportedURL(t *testing.T) {
	acq := &fakeAcquirer{err: acquire.ErrUnsupportedURL}
	mux := newTestMux(acq, &fakeStore{})

	body := `{"url":"https://example.com/watch?v=abc"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/process/video", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp ProcessVideoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("response = %+v, want failure with error message", resp)
	}
}

func TestHandleProcessVideoBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"url":`},
		{"missing url", `{"page_number":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acq := &fakeAcquirer{}
			mux := newTestMux(acq, &fakeStore{})

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/process/video", strings.NewReader(tt.body)))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if acq.gotURL != "" {
				t.Error("stage must not be called for a bad request")
			}
		})
	}
}

func TestHandleProcessVideoFetchFailure(t *testing.T) {
	acq := &fakeAcquirer{err: &acquire.FetchError{Err: context.DeadlineExceeded}}
	mux := newTestMux(acq, &fakeStore{})

	body := `{"url":"https://www.youtube.com/watch?v=abc"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/process/video", strings.NewReader(body)))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp ProcessVideoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("response = %+v", resp)
	}
}
