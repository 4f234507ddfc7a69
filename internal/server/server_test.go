package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/accent-lens/internal/config"
	"github.com/nguyentantai21042004/accent-lens/internal/logger"
	"github.com/nguyentantai21042004/accent-lens/internal/processor"
)

// stubProcessor returns a canned run and records the source it was given
type stubProcessor struct {
	run     *processor.Run
	lastSrc processor.Source
}

func (s *stubProcessor) Process(ctx context.Context, src processor.Source) *processor.Run {
	s.lastSrc = src
	return s.run
}

func newTestServer(t *testing.T, run *processor.Run) (*Server, *stubProcessor) {
	cfg := &config.Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	cfg.Paths.Temp = t.TempDir()

	proc := &stubProcessor{run: run}
	return New(cfg, proc, logger.New("error")), proc
}

func completedRun() *processor.Run {
	return &processor.Run{
		ID:         "run-1",
		Status:     processor.StatusCompleted,
		Accent:     "American English",
		Confidence: "85%",
		Summary:    "A short talk.",
		Raw:        `{"accent_prediction":"American English"}`,
		AudioWAV:   []byte("RIFF fake"),
		SourceName: "speech.mp3",
	}
}

func TestIndex(t *testing.T) {
	srv, _ := newTestServer(t, completedRun())

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Accent Lens") {
		t.Error("index page missing title")
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, completedRun())

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestAnalyzeNoInput(t *testing.T) {
	srv, _ := newTestServer(t, completedRun())

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAnalyzeUpload(t *testing.T) {
	srv, proc := newTestServer(t, completedRun())

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "speech.mp3")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("mp3 bytes"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := srv.App().Test(req, 5000)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var view runView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if view.Accent != "American English" || view.Confidence != "85%" {
		t.Errorf("view = %+v", view)
	}
	if view.AudioURL == "" || view.ReportURL == "" {
		t.Errorf("expected audio and report URLs, got %+v", view)
	}
	if proc.lastSrc.Filename != "speech.mp3" || len(proc.lastSrc.Data) == 0 {
		t.Errorf("source not forwarded: %+v", proc.lastSrc)
	}
}

func TestAnalyzeURL(t *testing.T) {
	srv, proc := newTestServer(t, completedRun())

	body := strings.NewReader("url=https://example.com/watch?v=abc")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := srv.App().Test(req, 5000)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if proc.lastSrc.URL != "https://example.com/watch?v=abc" {
		t.Errorf("URL not forwarded: %q", proc.lastSrc.URL)
	}
}

func TestAudioEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, completedRun())

	// Seed the store through the analyze endpoint
	body := strings.NewReader("url=https://example.com/x")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if _, err := srv.App().Test(req, 5000); err != nil {
		t.Fatal(err)
	}

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/runs/run-1/audio", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("Content-Type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if string(data) != "RIFF fake" {
		t.Errorf("audio bytes = %q", data)
	}
}

func TestAudioUnknownRun(t *testing.T) {
	srv, _ := newTestServer(t, completedRun())

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/runs/nope/audio", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRunStoreEviction(t *testing.T) {
	store := newRunStore(2)

	store.Put(&processor.Run{ID: "a"})
	store.Put(&processor.Run{ID: "b"})
	store.Put(&processor.Run{ID: "c"})

	if _, ok := store.Get("a"); ok {
		t.Error("oldest run should have been evicted")
	}
	if _, ok := store.Get("b"); !ok {
		t.Error("run b missing")
	}
	if _, ok := store.Get("c"); !ok {
		t.Error("run c missing")
	}
}
