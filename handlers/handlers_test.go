package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/kittchy/kotoba-cutouter/config"
	"github.com/kittchy/kotoba-cutouter/internal/jobs"
	"github.com/kittchy/kotoba-cutouter/internal/storage"
	"github.com/kittchy/kotoba-cutouter/models"
)

func newTestApp(t *testing.T) (*fiber.App, *storage.Store) {
	t.Helper()

	base := t.TempDir()
	store := storage.New(
		filepath.Join(base, "uploads"),
		filepath.Join(base, "outputs"),
		filepath.Join(base, "transcripts"),
		filepath.Join(base, "temp"),
	)

	cfg := &config.Settings{
		UploadDir:         store.UploadDir,
		OutputDir:         store.OutputDir,
		TranscriptDir:     store.TranscriptDir,
		TempDir:           store.TempDir,
		AllowedExtensions: []string{".mp4", ".mov"},
		ContextPadding:    2.0,
		MaxFileSize:       10 * 1024 * 1024,
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	h := NewApplicationHandler(logger, cfg, store, nil, jobs.NewRegistry(nil), nil, nil)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	apiV1.Post("/search", h.SearchTranscript)
	apiV1.Post("/trim", h.TrimVideo)
	apiV1.Get("/videos/:videoId/transcription", h.GetTranscriptionStatus)
	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func storeSampleTranscript(t *testing.T, store *storage.Store, videoID string) {
	t.Helper()
	transcript := &models.Transcript{
		VideoID: videoID,
		Segments: []models.TranscriptSegment{
			{
				Start: 1.0,
				End:   2.5,
				Text:  "こんにちは、世界",
				Words: []models.WordTimestamp{
					{Word: "こんにちは", Start: 1.0, End: 1.8, Probability: 0.97},
					{Word: "世界", Start: 1.8, End: 2.5, Probability: 0.92},
				},
			},
		},
		Language:  "ja",
		CreatedAt: time.Now(),
	}
	if _, err := store.SaveTranscript(transcript); err != nil {
		t.Fatal(err)
	}
}

func TestSearchTranscriptNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/search", SearchRequest{VideoID: "missing", Keyword: "hello"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404: a missing transcript must not read as zero matches", resp.StatusCode)
	}
}

func TestSearchBlankKeyword(t *testing.T) {
	app, store := newTestApp(t)
	storeSampleTranscript(t, store, "vid-1")

	resp := postJSON(t, app, "/api/v1/search", SearchRequest{VideoID: "vid-1", Keyword: "   "})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: a blank keyword is not an error", resp.StatusCode)
	}

	var body struct {
		Data SearchResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Data.TotalMatches != 0 || len(body.Data.Matches) != 0 {
		t.Errorf("blank keyword returned matches: %+v", body.Data)
	}
}

func TestSearchFindsMatch(t *testing.T) {
	app, store := newTestApp(t)
	storeSampleTranscript(t, store, "vid-1")

	resp := postJSON(t, app, "/api/v1/search", SearchRequest{VideoID: "vid-1", Keyword: "こんにちは"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Data SearchResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Data.TotalMatches != 1 {
		t.Fatalf("total_matches = %d, want 1", body.Data.TotalMatches)
	}

	m := body.Data.Matches[0]
	if m.Start != 1.0 || m.End != 1.8 {
		t.Errorf("match range = [%v, %v], want [1.0, 1.8]", m.Start, m.End)
	}
	if m.ClipStart != 1.0 || m.ClipEnd != 1.8 {
		t.Errorf("exact policy clip = [%v, %v], want [1.0, 1.8]", m.ClipStart, m.ClipEnd)
	}
	if m.StartDisplay != "00:01.00" || m.EndDisplay != "00:01.80" {
		t.Errorf("display = %q - %q", m.StartDisplay, m.EndDisplay)
	}
}

func TestSearchPaddedPolicy(t *testing.T) {
	app, store := newTestApp(t)
	storeSampleTranscript(t, store, "vid-1")

	resp := postJSON(t, app, "/api/v1/search",
		SearchRequest{VideoID: "vid-1", Keyword: "こんにちは", Padded: true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Data SearchResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Data.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(body.Data.Matches))
	}

	m := body.Data.Matches[0]
	// Match at [1.0, 1.8] padded by 2.0 clamps the start at zero.
	if m.ClipStart != 0.0 || m.ClipEnd != 3.8 {
		t.Errorf("padded clip = [%v, %v], want [0.0, 3.8]", m.ClipStart, m.ClipEnd)
	}
	// The raw match bounds stay untouched by padding.
	if m.Start != 1.0 || m.End != 1.8 {
		t.Errorf("match range = [%v, %v], want [1.0, 1.8]", m.Start, m.End)
	}
}

func TestSearchMissingVideoID(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/search", SearchRequest{Keyword: "hello"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestTrimRejectsInvalidRange(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name string
		req  TrimRequest
	}{
		{"negative start", TrimRequest{VideoID: "vid-1", StartTime: -1.0, EndTime: 2.0}},
		{"end equals start", TrimRequest{VideoID: "vid-1", StartTime: 2.0, EndTime: 2.0}},
		{"end before start", TrimRequest{VideoID: "vid-1", StartTime: 5.0, EndTime: 2.0}},
	}
	for _, tc := range tests {
		resp := postJSON(t, app, "/api/v1/trim", tc.req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400 before any ffmpeg delegation", tc.name, resp.StatusCode)
		}
	}
}

func TestTrimMissingUpload(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/trim", TrimRequest{VideoID: "missing", StartTime: 1.0, EndTime: 2.0})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestTranscriptionStatusNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req, err := http.NewRequest(http.MethodGet, "/api/v1/videos/missing/transcription", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestTranscriptionStatusFromDisk(t *testing.T) {
	app, store := newTestApp(t)
	storeSampleTranscript(t, store, "vid-1")

	req, err := http.NewRequest(http.MethodGet, "/api/v1/videos/vid-1/transcription", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 for a transcript persisted by an earlier run", resp.StatusCode)
	}
}
