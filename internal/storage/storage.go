// Package storage manages the service's on-disk state: uploaded videos,
// persisted transcripts, and trimmed clip outputs.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// ErrTranscriptNotFound is returned when no transcript has been stored for a
// video ID. Callers must surface this distinctly from a zero-match search.
var ErrTranscriptNotFound = errors.New("transcript not found")

// ErrUploadNotFound is returned when no uploaded file exists for a video ID.
var ErrUploadNotFound = errors.New("uploaded video not found")

// Store reads and writes the service's file areas. All paths it hands out
// stay inside the configured directories.
type Store struct {
	UploadDir     string
	OutputDir     string
	TranscriptDir string
	TempDir       string
}

// New creates a Store over the given directories.
func New(uploadDir, outputDir, transcriptDir, tempDir string) *Store {
	return &Store{
		UploadDir:     uploadDir,
		OutputDir:     outputDir,
		TranscriptDir: transcriptDir,
		TempDir:       tempDir,
	}
}

// SaveUpload streams an uploaded file into the upload directory under the
// given name and returns its path.
func (s *Store) SaveUpload(file *multipart.FileHeader, filename string) (string, error) {
	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening uploaded file: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.UploadDir, filename)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// FindUpload locates the uploaded file for a video ID by trying each allowed
// extension. Returns ErrUploadNotFound if none exists.
func (s *Store) FindUpload(videoID string, extensions []string) (string, error) {
	for _, ext := range extensions {
		candidate := filepath.Join(s.UploadDir, videoID+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrUploadNotFound
}
