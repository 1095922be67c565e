// Package media wraps the ffmpeg and ffprobe command-line tools for the few
// operations the service needs: probing metadata, extracting audio for
// transcription, and cutting clips.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// probeOutput captures the ffprobe JSON fields the service cares about.
type probeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// Info describes a probed media file. Pointer fields are nil when ffprobe
// did not report the value.
type Info struct {
	Duration *float64 `json:"duration,omitempty"`
	Width    *int     `json:"width,omitempty"`
	Height   *int     `json:"height,omitempty"`
	Codec    *string  `json:"codec,omitempty"`
	Format   *string  `json:"format,omitempty"`
}

// ProbeDuration returns the duration of a media file in seconds.
func ProbeDuration(ctx context.Context, path string) (float64, error) {
	info, err := Probe(ctx, path)
	if err != nil {
		return 0, err
	}
	if info.Duration == nil {
		return 0, fmt.Errorf("ffprobe reported no duration for %s", path)
	}
	return *info.Duration, nil
}

// Probe runs ffprobe and returns format and stream metadata.
func Probe(ctx context.Context, path string) (*Info, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w\nstderr: %s", err, stderr.String())
	}

	var out probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("parsing ffprobe output: %w", err)
	}

	info := &Info{}
	if out.Format.Duration != "" {
		if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
			info.Duration = &d
		}
	}
	if out.Format.FormatName != "" {
		f := out.Format.FormatName
		info.Format = &f
	}
	for _, stream := range out.Streams {
		if stream.CodecType != "video" {
			continue
		}
		w, h, codec := stream.Width, stream.Height, stream.CodecName
		info.Width = &w
		info.Height = &h
		if codec != "" {
			info.Codec = &codec
		}
		break
	}
	return info, nil
}

// ExtractAudio pulls the audio track out of a video as 16 kHz mono WAV, the
// input format Whisper expects.
func ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", videoPath,
		"-ar", "16000",
		"-ac", "1",
		"-vn",
		"-y",
		audioPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg audio extraction failed: %w\nstderr: %s", err, stderr.String())
	}
	return nil
}

// Trim cuts [start, end) out of the input file into output using stream copy,
// so the cut is lossless and fast. Any ffmpeg failure is returned with the
// tool's diagnostic output attached; the caller must not downgrade it.
func Trim(ctx context.Context, input, output string, start, end float64) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", input,
		"-ss", fmt.Sprintf("%.3f", start),
		"-to", fmt.Sprintf("%.3f", end),
		"-c", "copy",
		"-y",
		output,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg trim failed: %w\nstderr: %s", err, stderr.String())
	}
	return nil
}
