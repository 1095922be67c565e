package jobs

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kittchy/kotoba-cutouter/internal/catalog"
	"github.com/kittchy/kotoba-cutouter/internal/storage"
	"github.com/kittchy/kotoba-cutouter/internal/transcriber"
	"github.com/kittchy/kotoba-cutouter/models"
)

// TranscribeJob runs one video through the transcription engine on the
// worker pool, persists the transcript, and records the outcome in the
// registry and catalog.
type TranscribeJob struct {
	VideoID   string
	VideoPath string
	Language  string
	Engine    transcriber.Engine
	Store     *storage.Store
	Registry  *Registry
	Catalog   *catalog.Catalog
	Log       *logrus.Logger
}

// ID implements worker.Job.
func (j *TranscribeJob) ID() string {
	return "transcribe-" + j.VideoID
}

// Execute implements worker.Job.
func (j *TranscribeJob) Execute() error {
	j.Registry.MarkRunning(j.VideoID)
	j.Catalog.UpdateStatus(j.VideoID, models.StatusTranscribing)

	t, err := j.Engine.Transcribe(context.Background(), j.VideoID, j.VideoPath, j.Language)
	if err != nil {
		j.Registry.MarkFailed(j.VideoID, err.Error())
		j.Catalog.UpdateStatus(j.VideoID, models.StatusError)
		return fmt.Errorf("transcribing video %s: %w", j.VideoID, err)
	}

	if _, err := j.Store.SaveTranscript(t); err != nil {
		j.Registry.MarkFailed(j.VideoID, err.Error())
		j.Catalog.UpdateStatus(j.VideoID, models.StatusError)
		return fmt.Errorf("persisting transcript for %s: %w", j.VideoID, err)
	}

	j.Registry.MarkDone(j.VideoID, t)
	j.Catalog.UpdateStatus(j.VideoID, models.StatusReady)
	j.Log.WithFields(logrus.Fields{
		"video_id": j.VideoID,
		"segments": len(t.Segments),
		"language": t.Language,
	}).Info("Transcription completed")
	return nil
}
