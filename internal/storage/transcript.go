package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kittchy/kotoba-cutouter/models"
)

// transcriptPath returns the JSON file path for a video's transcript.
func (s *Store) transcriptPath(videoID string) string {
	return filepath.Join(s.TranscriptDir, videoID+".json")
}

// SaveTranscript persists a transcript as pretty-printed JSON keyed by its
// video ID, replacing any prior transcript for that ID wholesale.
func (s *Store) SaveTranscript(t *models.Transcript) (string, error) {
	if err := os.MkdirAll(s.TranscriptDir, 0o755); err != nil {
		return "", fmt.Errorf("creating transcript directory: %w", err)
	}

	path := s.transcriptPath(t.VideoID)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	// Keep Japanese text readable in the stored file.
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return "", fmt.Errorf("encoding transcript for %s: %w", t.VideoID, err)
	}
	return path, nil
}

// LoadTranscript reads the stored transcript for a video ID. Returns
// ErrTranscriptNotFound when none has been persisted.
func (s *Store) LoadTranscript(videoID string) (*models.Transcript, error) {
	data, err := os.ReadFile(s.transcriptPath(videoID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("reading transcript for %s: %w", videoID, err)
	}

	var t models.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing transcript for %s: %w", videoID, err)
	}
	return &t, nil
}

// HasTranscript reports whether a transcript has been persisted for the ID.
func (s *Store) HasTranscript(videoID string) bool {
	_, err := os.Stat(s.transcriptPath(videoID))
	return err == nil
}
