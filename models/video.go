package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoStatus tracks where a video is in its processing lifecycle.
type VideoStatus string

const (
	StatusUploaded     VideoStatus = "uploaded"
	StatusTranscribing VideoStatus = "transcribing"
	StatusReady        VideoStatus = "ready"
	StatusError        VideoStatus = "error"
)

// VideoMetadata represents an uploaded video file and its extracted properties.
// Duration is a pointer because ffprobe can fail without failing the upload.
type VideoMetadata struct {
	ID         uuid.UUID   `json:"id"`
	Filename   string      `json:"filename"`
	Filepath   string      `json:"filepath"`
	UploadedAt time.Time   `json:"uploaded_at"`
	Duration   *float64    `json:"duration,omitempty"`
	Status     VideoStatus `json:"status"`
}
