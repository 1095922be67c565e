package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings holds the application configuration. Values come from the
// environment, with a .env file loaded first when present.
type Settings struct {
	// File storage directories.
	UploadDir     string
	OutputDir     string
	TranscriptDir string
	TempDir       string

	// MaxFileSize is the upload size cap in bytes.
	MaxFileSize int64

	// Whisper model settings.
	WhisperModelSize string
	WhisperDevice    string

	// AllowedExtensions is the video extension whitelist (lowercase, with dot).
	AllowedExtensions []string

	// MaxFileAgeHours controls the periodic cleanup of stale files.
	MaxFileAgeHours int

	// ContextPadding is the seconds of margin applied by the padded clip
	// policy.
	ContextPadding float64

	// Worker pool sizing for background transcription.
	WorkerCount  int
	JobQueueSize int

	// ListenAddr is the HTTP bind address.
	ListenAddr string

	// Optional Supabase catalog. Empty URL disables it and the service
	// runs purely on the local filesystem.
	SupabaseURL string
	SupabaseKey string
}

var validModelSizes = []string{"tiny", "base", "small", "medium", "large", "large-v3"}

// Load reads settings from the environment. A .env file in the working
// directory is honored but not required.
func Load() (*Settings, error) {
	// Ignore the error: a missing .env file is the normal case in
	// containerized deployments.
	_ = godotenv.Load()

	s := &Settings{
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		OutputDir:         getEnv("OUTPUT_DIR", "outputs"),
		TranscriptDir:     getEnv("TRANSCRIPT_DIR", "transcripts"),
		TempDir:           getEnv("TEMP_DIR", "temp"),
		MaxFileSize:       getEnvInt64("MAX_FILE_SIZE", 500*1024*1024),
		WhisperModelSize:  getEnv("WHISPER_MODEL_SIZE", "base"),
		WhisperDevice:     getEnv("WHISPER_DEVICE", "cpu"),
		AllowedExtensions: splitList(getEnv("ALLOWED_EXTENSIONS", ".mp4,.mov,.avi,.mkv,.webm")),
		MaxFileAgeHours:   getEnvInt("MAX_FILE_AGE_HOURS", 24),
		ContextPadding:    getEnvFloat("CONTEXT_PADDING", 2.0),
		WorkerCount:       getEnvInt("WORKER_COUNT", 2),
		JobQueueSize:      getEnvInt("JOB_QUEUE_SIZE", 16),
		ListenAddr:        getEnv("LISTEN_ADDR", ":8000"),
		SupabaseURL:       os.Getenv("SUPABASE_URL"),
		SupabaseKey:       os.Getenv("SUPABASE_SERVICE_KEY"),
	}

	if !stringInList(s.WhisperModelSize, validModelSizes) {
		return nil, fmt.Errorf("invalid WHISPER_MODEL_SIZE %q (valid: %s)",
			s.WhisperModelSize, strings.Join(validModelSizes, ", "))
	}
	if s.WhisperDevice != "cpu" && s.WhisperDevice != "cuda" {
		return nil, fmt.Errorf("invalid WHISPER_DEVICE %q (valid: cpu, cuda)", s.WhisperDevice)
	}
	if s.ContextPadding < 0 {
		return nil, fmt.Errorf("CONTEXT_PADDING must not be negative, got %v", s.ContextPadding)
	}
	return s, nil
}

// EnsureDirectories creates the storage directories if they do not exist.
func (s *Settings) EnsureDirectories() error {
	for _, dir := range []string{s.UploadDir, s.OutputDir, s.TranscriptDir, s.TempDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// ExtensionAllowed reports whether ext (lowercase, with dot) is on the
// upload whitelist.
func (s *Settings) ExtensionAllowed(ext string) bool {
	return stringInList(strings.ToLower(ext), s.AllowedExtensions)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

func stringInList(s string, list []string) bool {
	for _, item := range list {
		if s == item {
			return true
		}
	}
	return false
}
