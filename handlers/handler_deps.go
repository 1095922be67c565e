package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/kittchy/kotoba-cutouter/config"
	"github.com/kittchy/kotoba-cutouter/internal/catalog"
	"github.com/kittchy/kotoba-cutouter/internal/jobs"
	"github.com/kittchy/kotoba-cutouter/internal/storage"
	"github.com/kittchy/kotoba-cutouter/internal/transcriber"
	"github.com/kittchy/kotoba-cutouter/internal/worker"
)

// ApplicationHandler holds the shared dependencies for all HTTP handlers.
// Everything is injected here once at startup; handlers never reach for
// package-level state.
type ApplicationHandler struct {
	Logger     *logrus.Logger
	Config     *config.Settings
	Store      *storage.Store
	Catalog    *catalog.Catalog
	Jobs       *jobs.Registry
	Dispatcher *worker.Dispatcher
	Engine     transcriber.Engine
	Validate   *validator.Validate
}

// NewApplicationHandler creates an ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(
	logger *logrus.Logger,
	cfg *config.Settings,
	store *storage.Store,
	cat *catalog.Catalog,
	registry *jobs.Registry,
	dispatcher *worker.Dispatcher,
	engine transcriber.Engine,
) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:     logger,
		Config:     cfg,
		Store:      store,
		Catalog:    cat,
		Jobs:       registry,
		Dispatcher: dispatcher,
		Engine:     engine,
		Validate:   validator.New(),
	}
}
