package handlers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kittchy/kotoba-cutouter/internal/media"
	"github.com/kittchy/kotoba-cutouter/models"
	"github.com/kittchy/kotoba-cutouter/utils"
)

// UploadVideo handles a multipart video upload.
//
// @Summary Upload a video file
// @Tags videos
// @Accept mpfd
// @Produce json
// @Param video formData file true "Video file"
// @Success 201 {object} models.VideoMetadata
// @Router /api/v1/videos/upload [post]
func (h *ApplicationHandler) UploadVideo(c *fiber.Ctx) error {
	file, err := c.FormFile("video")
	if err != nil {
		h.Logger.WithField("error", err.Error()).Warn("Upload request without video file")
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Missing video file: %v", err))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !h.Config.ExtensionAllowed(ext) {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Unsupported file type %q (allowed: %s)",
				ext, strings.Join(h.Config.AllowedExtensions, ", ")))
	}

	if file.Size > h.Config.MaxFileSize {
		return utils.RespondWithError(c, fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large (max %d MB)", h.Config.MaxFileSize/1024/1024))
	}

	videoID := uuid.New()
	path, err := h.Store.SaveUpload(file, videoID.String()+ext)
	if err != nil {
		h.Logger.WithField("error", err.Error()).Error("Failed to save uploaded file")
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			"Failed to save uploaded file")
	}

	metadata := models.VideoMetadata{
		ID:         videoID,
		Filename:   file.Filename,
		Filepath:   path,
		UploadedAt: time.Now(),
		Status:     models.StatusUploaded,
	}

	// Duration is informational; a probe failure does not fail the upload.
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()
	if duration, err := media.ProbeDuration(ctx, path); err != nil {
		h.Logger.WithFields(map[string]interface{}{
			"video_id": videoID.String(),
			"error":    err.Error(),
		}).Warn("Could not probe video duration")
	} else {
		metadata.Duration = &duration
	}

	h.Catalog.InsertVideo(metadata)

	h.Logger.WithFields(map[string]interface{}{
		"video_id": videoID.String(),
		"filename": file.Filename,
		"size":     file.Size,
	}).Info("Video uploaded")

	return utils.RespondWithJSON(c, fiber.StatusCreated, metadata)
}
