package transcriber

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kittchy/kotoba-cutouter/internal/media"
	"github.com/kittchy/kotoba-cutouter/models"
)

//go:embed assets/faster_whisper.py
var helperScript []byte

// fwOutput is the JSON the helper script prints on stdout.
type fwOutput struct {
	Language string `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
		Words []struct {
			Word        string  `json:"word"`
			Start       float64 `json:"start"`
			End         float64 `json:"end"`
			Probability float64 `json:"probability"`
		} `json:"words"`
	} `json:"segments"`
}

// FasterWhisper runs transcription through the faster-whisper Python
// package via an embedded helper script, with word_timestamps enabled.
type FasterWhisper struct {
	ModelSize string
	Device    string
	TempDir   string
	Log       *logrus.Logger
}

// NewFasterWhisper creates the engine. The model itself is loaded by the
// helper process on each call; model caching is faster-whisper's concern.
func NewFasterWhisper(modelSize, device, tempDir string, log *logrus.Logger) *FasterWhisper {
	return &FasterWhisper{ModelSize: modelSize, Device: device, TempDir: tempDir, Log: log}
}

// Transcribe implements Engine: extract the audio track, run faster-whisper
// over it, and map the output into the transcript model.
func (f *FasterWhisper) Transcribe(ctx context.Context, videoID, videoPath, language string) (*models.Transcript, error) {
	if err := os.MkdirAll(f.TempDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}

	audioPath := filepath.Join(f.TempDir, uuid.NewString()+".wav")
	if err := media.ExtractAudio(ctx, videoPath, audioPath); err != nil {
		return nil, err
	}
	defer os.Remove(audioPath)

	scriptPath := filepath.Join(f.TempDir, "faster_whisper_helper.py")
	if err := os.WriteFile(scriptPath, helperScript, 0o755); err != nil {
		return nil, fmt.Errorf("writing helper script: %w", err)
	}
	defer os.Remove(scriptPath)

	python := os.Getenv("PYTHON_BIN")
	if python == "" {
		python = "python3"
	}

	f.Log.WithFields(logrus.Fields{
		"video_id": videoID,
		"model":    f.ModelSize,
		"device":   f.Device,
		"language": language,
	}).Info("Starting transcription")

	cmd := exec.CommandContext(ctx, python, scriptPath,
		"--audio", audioPath,
		"--model", f.ModelSize,
		"--device", f.Device,
		"--language", language,
	)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("faster-whisper failed: %s", strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("running faster-whisper: %w", err)
	}

	var parsed fwOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, fmt.Errorf("parsing faster-whisper output: %w", err)
	}

	return f.toTranscript(videoID, &parsed), nil
}

func (f *FasterWhisper) toTranscript(videoID string, out *fwOutput) *models.Transcript {
	segments := make([]models.TranscriptSegment, 0, len(out.Segments))
	for _, seg := range out.Segments {
		words := make([]models.WordTimestamp, 0, len(seg.Words))
		for _, w := range seg.Words {
			words = append(words, models.WordTimestamp{
				Word:        w.Word,
				Start:       w.Start,
				End:         w.End,
				Probability: w.Probability,
			})
		}
		segments = append(segments, models.TranscriptSegment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
			Words: words,
		})
	}
	return &models.Transcript{
		VideoID:   videoID,
		Segments:  segments,
		Language:  out.Language,
		CreatedAt: time.Now(),
	}
}
