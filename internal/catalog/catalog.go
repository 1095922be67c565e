// Package catalog persists video metadata to Supabase. The catalog is
// optional: without a configured project URL the service runs purely on the
// local filesystem and every catalog call is a no-op, so callers never need
// to branch on whether it is enabled.
package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"

	"github.com/kittchy/kotoba-cutouter/models"
)

const videosTable = "videos"

// videoRow maps VideoMetadata onto the videos table.
type videoRow struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Filepath   string    `json:"filepath"`
	UploadedAt time.Time `json:"uploaded_at"`
	Duration   *float64  `json:"duration,omitempty"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Catalog is a thin wrapper over the Supabase client. A nil *Catalog is
// valid and inert.
type Catalog struct {
	client *supa.Client
	log    *logrus.Logger
}

// New connects to the Supabase project. An empty URL returns a nil catalog,
// which disables persistence.
func New(supabaseURL, serviceKey string, log *logrus.Logger) (*Catalog, error) {
	if supabaseURL == "" {
		return nil, nil
	}
	client, err := supa.NewClient(supabaseURL, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing Supabase client: %w", err)
	}
	log.Info("Video catalog enabled (Supabase)")
	return &Catalog{client: client, log: log}, nil
}

// Enabled reports whether catalog persistence is active.
func (c *Catalog) Enabled() bool {
	return c != nil && c.client != nil
}

// InsertVideo records a newly uploaded video. Catalog failures are logged
// and swallowed; the upload itself already succeeded on disk.
func (c *Catalog) InsertVideo(m models.VideoMetadata) {
	if !c.Enabled() {
		return
	}

	row := videoRow{
		ID:         m.ID.String(),
		Filename:   m.Filename,
		Filepath:   m.Filepath,
		UploadedAt: m.UploadedAt,
		Duration:   m.Duration,
		Status:     string(m.Status),
		UpdatedAt:  time.Now(),
	}

	_, _, err := c.client.From(videosTable).
		Insert(row, false, "", "minimal", "").
		Execute()
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"video_id": row.ID,
			"error":    err.Error(),
		}).Warn("Failed to insert video into catalog")
	}
}

// UpdateStatus advances a video's lifecycle status in the catalog.
func (c *Catalog) UpdateStatus(videoID string, status models.VideoStatus) {
	if !c.Enabled() {
		return
	}

	fields := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}

	body, _, err := c.client.From(videosTable).
		Update(fields, "representation", "").
		Eq("id", videoID).
		Execute()
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"video_id": videoID,
			"status":   status,
			"error":    err.Error(),
		}).Warn("Failed to update video status in catalog")
		return
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err == nil && len(rows) == 0 {
		c.log.WithField("video_id", videoID).Debug("Video not present in catalog")
	}
}
