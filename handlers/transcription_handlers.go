package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/kittchy/kotoba-cutouter/internal/jobs"
	"github.com/kittchy/kotoba-cutouter/internal/storage"
	"github.com/kittchy/kotoba-cutouter/internal/worker"
	"github.com/kittchy/kotoba-cutouter/utils"
)

// StartTranscription submits a background transcription job for a video.
//
// @Summary Start transcription of an uploaded video
// @Tags transcription
// @Produce json
// @Param videoId path string true "Video ID"
// @Success 202 {object} jobs.Record
// @Router /api/v1/videos/{videoId}/transcribe [post]
func (h *ApplicationHandler) StartTranscription(c *fiber.Ctx) error {
	videoID := c.Params("videoId")

	videoPath, err := h.Store.FindUpload(videoID, h.Config.AllowedExtensions)
	if err != nil {
		if errors.Is(err, storage.ErrUploadNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound,
				fmt.Sprintf("No uploaded video found for ID %s", videoID))
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not locate video: %v", err))
	}

	// Already transcribed: nothing to do, the transcript is ready to search.
	if h.Store.HasTranscript(videoID) {
		return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
			"video_id": videoID,
			"state":    jobs.StateDone,
		})
	}

	record, err := h.Jobs.Begin(videoID)
	if err != nil {
		if errors.Is(err, jobs.ErrJobExists) {
			existing, _ := h.Jobs.Get(videoID)
			return utils.RespondWithJSON(c, fiber.StatusAccepted, existing)
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not register job: %v", err))
	}

	job := &jobs.TranscribeJob{
		VideoID:   videoID,
		VideoPath: videoPath,
		Language:  c.Query("language", "ja"),
		Engine:    h.Engine,
		Store:     h.Store,
		Registry:  h.Jobs,
		Catalog:   h.Catalog,
		Log:       h.Logger,
	}
	if err := h.Dispatcher.SubmitJob(job); err != nil {
		h.Jobs.MarkFailed(videoID, err.Error())
		if errors.Is(err, worker.ErrQueueFull) {
			return utils.RespondWithError(c, fiber.StatusServiceUnavailable,
				"Transcription queue is full, try again later")
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not queue transcription: %v", err))
	}

	h.Logger.WithField("video_id", videoID).Info("Transcription job queued")
	return utils.RespondWithJSON(c, fiber.StatusAccepted, record)
}

// GetTranscriptionStatus reports job state, or the stored transcript once
// transcription has completed.
//
// @Summary Get transcription status for a video
// @Tags transcription
// @Produce json
// @Param videoId path string true "Video ID"
// @Success 200 {object} models.Transcript
// @Router /api/v1/videos/{videoId}/transcription [get]
func (h *ApplicationHandler) GetTranscriptionStatus(c *fiber.Ctx) error {
	videoID := c.Params("videoId")

	if record, ok := h.Jobs.Get(videoID); ok {
		switch record.State {
		case jobs.StateDone:
			return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
				"state":      record.State,
				"transcript": record.Transcript,
			})
		case jobs.StateFailed:
			return utils.RespondWithError(c, fiber.StatusInternalServerError,
				fmt.Sprintf("Transcription failed: %s", record.Err))
		default:
			return utils.RespondWithJSON(c, fiber.StatusAccepted, record)
		}
	}

	// No job in this process; a transcript from an earlier run may still
	// exist on disk.
	transcript, err := h.Store.LoadTranscript(videoID)
	if err != nil {
		if errors.Is(err, storage.ErrTranscriptNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound,
				fmt.Sprintf("No transcription found for video %s", videoID))
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not load transcript: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"state":      jobs.StateDone,
		"transcript": transcript,
	})
}
