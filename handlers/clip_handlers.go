package handlers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kittchy/kotoba-cutouter/internal/media"
	"github.com/kittchy/kotoba-cutouter/internal/storage"
	"github.com/kittchy/kotoba-cutouter/utils"
)

// TrimRequest is the JSON body for extracting a clip.
type TrimRequest struct {
	VideoID   string  `json:"video_id" validate:"required"`
	StartTime float64 `json:"start_time" validate:"gte=0"`
	EndTime   float64 `json:"end_time" validate:"gtfield=StartTime"`
}

// TrimVideo cuts [start_time, end_time) out of an uploaded video. The range
// is validated before anything is delegated to ffmpeg.
//
// @Summary Extract a clip from an uploaded video
// @Tags clips
// @Accept json
// @Produce json
// @Param request body TrimRequest true "Clip range"
// @Success 200 {object} map[string]string
// @Router /api/v1/trim [post]
func (h *ApplicationHandler) TrimVideo(c *fiber.Ctx) error {
	payload := new(TrimRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := h.Validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			strings.Join(utils.FormatValidationErrors(err), "; "))
	}

	videoPath, err := h.Store.FindUpload(payload.VideoID, h.Config.AllowedExtensions)
	if err != nil {
		if errors.Is(err, storage.ErrUploadNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound,
				fmt.Sprintf("No uploaded video found for ID %s", payload.VideoID))
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not locate video: %v", err))
	}

	outputName := fmt.Sprintf("%s_%.2f_%.2f.mp4", payload.VideoID, payload.StartTime, payload.EndTime)
	outputPath := filepath.Join(h.Store.OutputDir, outputName)

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Minute)
	defer cancel()
	if err := media.Trim(ctx, videoPath, outputPath, payload.StartTime, payload.EndTime); err != nil {
		// Propagate ffmpeg's diagnostic; a trim failure must never look
		// like an empty result.
		h.Logger.WithFields(map[string]interface{}{
			"video_id": payload.VideoID,
			"error":    err.Error(),
		}).Error("Clip extraction failed")
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Clip extraction failed: %v", err))
	}

	h.Logger.WithFields(map[string]interface{}{
		"video_id": payload.VideoID,
		"start":    payload.StartTime,
		"end":      payload.EndTime,
		"output":   outputName,
	}).Info("Clip extracted")

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"output_file":  outputName,
		"download_url": "/api/v1/clips/" + outputName,
	})
}

// DownloadClip serves a previously extracted clip.
//
// @Summary Download an extracted clip
// @Tags clips
// @Produce octet-stream
// @Param filename path string true "Clip file name"
// @Router /api/v1/clips/{filename} [get]
func (h *ApplicationHandler) DownloadClip(c *fiber.Ctx) error {
	filename := c.Params("filename")
	if filename == "" || strings.Contains(filename, "..") ||
		strings.ContainsAny(filename, `/\`) {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid clip file name")
	}

	path := filepath.Join(h.Store.OutputDir, filename)
	if h.Store.FileSize(path) == 0 {
		return utils.RespondWithError(c, fiber.StatusNotFound,
			fmt.Sprintf("Clip %s not found", filename))
	}
	return c.Download(path)
}
