package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"github.com/kittchy/kotoba-cutouter/config"
	_ "github.com/kittchy/kotoba-cutouter/docs"
	"github.com/kittchy/kotoba-cutouter/handlers"
	"github.com/kittchy/kotoba-cutouter/internal/catalog"
	"github.com/kittchy/kotoba-cutouter/internal/jobs"
	"github.com/kittchy/kotoba-cutouter/internal/storage"
	"github.com/kittchy/kotoba-cutouter/internal/transcriber"
	"github.com/kittchy/kotoba-cutouter/internal/worker"
	"github.com/kittchy/kotoba-cutouter/middleware"
)

// @title kotoba-cutouter API
// @version 0.1.0
// @description Video trimming tool with word-level transcription search
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger()

	if err := cfg.EnsureDirectories(); err != nil {
		logger.Fatalf("Failed to create storage directories: %v", err)
	}

	store := storage.New(cfg.UploadDir, cfg.OutputDir, cfg.TranscriptDir, cfg.TempDir)

	cat, err := catalog.New(cfg.SupabaseURL, cfg.SupabaseKey, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize video catalog: %v", err)
	}

	var recorder jobs.StatusRecorder
	if cfg.SupabaseURL != "" {
		recorder = jobs.NewSupabaseRecorder(cfg.SupabaseURL, cfg.SupabaseKey, logger)
	}
	registry := jobs.NewRegistry(recorder)

	dispatcher := worker.NewDispatcher(cfg.WorkerCount, cfg.JobQueueSize, logger)
	dispatcher.Run()

	engine := transcriber.NewFasterWhisper(cfg.WhisperModelSize, cfg.WhisperDevice, cfg.TempDir, logger)

	h := handlers.NewApplicationHandler(logger, cfg, store, cat, registry, dispatcher, engine)

	app := fiber.New(fiber.Config{
		// Leave headroom above the upload cap so the size check in the
		// handler produces the response, not Fiber's body limit.
		BodyLimit: int(cfg.MaxFileSize) + 1024*1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "kotoba-cutouter is running",
			"version": "0.1.0",
		})
	})
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	apiV1 := app.Group("/api/v1")
	apiV1.Post("/videos/upload", h.UploadVideo)
	apiV1.Post("/videos/:videoId/transcribe", h.StartTranscription)
	apiV1.Get("/videos/:videoId/transcription", h.GetTranscriptionStatus)
	apiV1.Post("/search", h.SearchTranscript)
	apiV1.Post("/trim", h.TrimVideo)
	apiV1.Get("/clips/:filename", h.DownloadClip)

	// Periodically remove stale uploads, clips, and temp audio.
	cleanupQuit := make(chan struct{})
	go runCleanup(store, cfg, logger, cleanupQuit)

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			logger.Fatalf("HTTP server stopped: %v", err)
		}
	}()
	logger.WithField("addr", cfg.ListenAddr).Info("kotoba-cutouter started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down")
	close(cleanupQuit)
	if err := app.Shutdown(); err != nil {
		logger.Errorf("HTTP shutdown error: %v", err)
	}
	dispatcher.Stop()
	logger.Info("Shutdown complete")
}

func runCleanup(store *storage.Store, cfg *config.Settings, logger *logrus.Logger, quit <-chan struct{}) {
	maxAge := time.Duration(cfg.MaxFileAgeHours) * time.Hour
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			total := 0
			for _, dir := range []string{cfg.UploadDir, cfg.OutputDir, cfg.TempDir} {
				n, err := store.CleanupOldFiles(dir, maxAge)
				if err != nil {
					logger.Warnf("Cleanup of %s failed: %v", dir, err)
					continue
				}
				total += n
			}
			if total > 0 {
				logger.Infof("Cleanup removed %d stale files", total)
			}
		case <-quit:
			return
		}
	}
}
