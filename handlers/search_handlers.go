package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kittchy/kotoba-cutouter/internal/search"
	"github.com/kittchy/kotoba-cutouter/internal/storage"
	"github.com/kittchy/kotoba-cutouter/utils"
)

// SearchRequest is the JSON body for a transcript search.
type SearchRequest struct {
	VideoID string `json:"video_id" validate:"required"`
	Keyword string `json:"keyword"`
	// Padded widens each clip range by the configured context padding
	// instead of clipping exactly at the matched tokens.
	Padded bool `json:"padded"`
}

// SearchMatch is one located occurrence, with resolved clip bounds and
// display-formatted timestamps.
type SearchMatch struct {
	MatchedText  string  `json:"matched_text"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	StartDisplay string  `json:"start_display"`
	EndDisplay   string  `json:"end_display"`
	ClipStart    float64 `json:"clip_start"`
	ClipEnd      float64 `json:"clip_end"`
	Context      string  `json:"context"`
	SegmentIndex int     `json:"segment_index"`
}

// SearchResponse is the search result payload.
type SearchResponse struct {
	Keyword      string        `json:"keyword"`
	Matches      []SearchMatch `json:"matches"`
	TotalMatches int           `json:"total_matches"`
}

// SearchTranscript finds every occurrence of a keyword or phrase in a
// video's transcript and returns the time range of each occurrence.
//
// @Summary Search a transcript for a keyword or phrase
// @Tags search
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Search parameters"
// @Success 200 {object} SearchResponse
// @Failure 404 {object} map[string]string "No transcript for the video"
// @Router /api/v1/search [post]
func (h *ApplicationHandler) SearchTranscript(c *fiber.Ctx) error {
	payload := new(SearchRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := h.Validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			strings.Join(utils.FormatValidationErrors(err), "; "))
	}

	// A missing transcript is a distinct condition, never an empty result:
	// the caller must be able to tell "not transcribed yet" from "no hits".
	transcript, err := h.Store.LoadTranscript(payload.VideoID)
	if err != nil {
		if errors.Is(err, storage.ErrTranscriptNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound,
				fmt.Sprintf("No transcription found for video %s; run transcription first", payload.VideoID))
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Could not load transcript: %v", err))
	}

	policy := search.Exact()
	if payload.Padded {
		policy = search.Padded(h.Config.ContextPadding)
	}

	matches := search.FindMatches(transcript, payload.Keyword)
	results := make([]SearchMatch, 0, len(matches))
	for _, m := range matches {
		clip, err := search.Resolve(m, policy)
		if err != nil {
			// A degenerate token range from the producer; report it
			// rather than returning a partial match list.
			h.Logger.WithFields(map[string]interface{}{
				"video_id": payload.VideoID,
				"start":    m.Start,
				"end":      m.End,
			}).Error("Match resolved to an invalid range")
			return utils.RespondWithError(c, fiber.StatusInternalServerError,
				fmt.Sprintf("Match at %v could not be resolved: %v", m.Start, err))
		}
		results = append(results, SearchMatch{
			MatchedText:  m.MatchedText,
			Start:        m.Start,
			End:          m.End,
			StartDisplay: search.FormatTimestamp(m.Start),
			EndDisplay:   search.FormatTimestamp(m.End),
			ClipStart:    clip.Start,
			ClipEnd:      clip.End,
			Context:      m.Context,
			SegmentIndex: m.SegmentIndex,
		})
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, SearchResponse{
		Keyword:      payload.Keyword,
		Matches:      results,
		TotalMatches: len(results),
	})
}
