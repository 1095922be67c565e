// Package transcriber produces word-level transcripts from video files.
package transcriber

import (
	"context"

	"github.com/kittchy/kotoba-cutouter/models"
)

// Engine turns a video file into a word-level transcript. Implementations
// are constructed once at startup and injected into every call site; there
// is no ambient shared instance.
type Engine interface {
	Transcribe(ctx context.Context, videoID, videoPath, language string) (*models.Transcript, error)
}
