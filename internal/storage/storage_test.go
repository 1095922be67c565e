package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kittchy/kotoba-cutouter/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	base := t.TempDir()
	return New(
		filepath.Join(base, "uploads"),
		filepath.Join(base, "outputs"),
		filepath.Join(base, "transcripts"),
		filepath.Join(base, "temp"),
	)
}

func TestTranscriptRoundTrip(t *testing.T) {
	store := newTestStore(t)

	original := &models.Transcript{
		VideoID: "vid-1",
		Segments: []models.TranscriptSegment{
			{
				Start: 0.0,
				End:   1.2,
				Text:  "こんにちは",
				Words: []models.WordTimestamp{
					{Word: "こん", Start: 0.0, End: 0.5, Probability: 0.95},
					{Word: "にちは", Start: 0.5, End: 1.2, Probability: 0.91},
				},
			},
		},
		Language:  "ja",
		CreatedAt: time.Date(2025, 11, 2, 10, 30, 0, 0, time.UTC),
	}

	if _, err := store.SaveTranscript(original); err != nil {
		t.Fatalf("SaveTranscript failed: %v", err)
	}

	loaded, err := store.LoadTranscript("vid-1")
	if err != nil {
		t.Fatalf("LoadTranscript failed: %v", err)
	}
	if loaded.VideoID != original.VideoID || loaded.Language != original.Language {
		t.Errorf("loaded = %+v", loaded)
	}
	if len(loaded.Segments) != 1 || loaded.Segments[0].WordCount() != 2 {
		t.Errorf("loaded segments = %+v", loaded.Segments)
	}
	if loaded.Segments[0].Words[1].Word != "にちは" {
		t.Errorf("second word = %q", loaded.Segments[0].Words[1].Word)
	}
	if !loaded.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("created_at = %v, want %v", loaded.CreatedAt, original.CreatedAt)
	}
}

func TestLoadTranscriptNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadTranscript("missing")
	if !errors.Is(err, ErrTranscriptNotFound) {
		t.Errorf("LoadTranscript on missing ID = %v, want ErrTranscriptNotFound", err)
	}
}

func TestSaveTranscriptReplacesPrior(t *testing.T) {
	store := newTestStore(t)

	old := &models.Transcript{VideoID: "vid-1", Language: "ja"}
	if _, err := store.SaveTranscript(old); err != nil {
		t.Fatalf("SaveTranscript failed: %v", err)
	}

	replacement := &models.Transcript{VideoID: "vid-1", Language: "en"}
	if _, err := store.SaveTranscript(replacement); err != nil {
		t.Fatalf("SaveTranscript (replacement) failed: %v", err)
	}

	loaded, err := store.LoadTranscript("vid-1")
	if err != nil {
		t.Fatalf("LoadTranscript failed: %v", err)
	}
	if loaded.Language != "en" {
		t.Errorf("re-transcription did not replace prior transcript: language = %q", loaded.Language)
	}
}

func TestFindUpload(t *testing.T) {
	store := newTestStore(t)
	exts := []string{".mp4", ".mov"}

	if _, err := store.FindUpload("vid-1", exts); !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("FindUpload on empty store = %v, want ErrUploadNotFound", err)
	}

	if err := os.MkdirAll(store.UploadDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(store.UploadDir, "vid-1.mov")
	if err := os.WriteFile(path, []byte("fake video"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := store.FindUpload("vid-1", exts)
	if err != nil {
		t.Fatalf("FindUpload failed: %v", err)
	}
	if found != path {
		t.Errorf("FindUpload = %q, want %q", found, path)
	}
}

func TestCleanupOldFiles(t *testing.T) {
	store := newTestStore(t)
	dir := store.TempDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	oldFile := filepath.Join(dir, "old.wav")
	newFile := filepath.Join(dir, "new.wav")
	for _, f := range []string{oldFile, newFile} {
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldFile, stale, stale); err != nil {
		t.Fatal(err)
	}

	deleted, err := store.CleanupOldFiles(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("CleanupOldFiles failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("stale file still present")
	}
	if _, err := os.Stat(newFile); err != nil {
		t.Error("fresh file was removed")
	}
}

func TestCleanupMissingDirectory(t *testing.T) {
	store := newTestStore(t)

	deleted, err := store.CleanupOldFiles(filepath.Join(store.TempDir, "nope"), time.Hour)
	if err != nil {
		t.Fatalf("CleanupOldFiles on missing dir returned error: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}
