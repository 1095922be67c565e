package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger: JSON to stdout, level from
// LOG_LEVEL (default info). The instance is constructed once in main and
// injected into everything that logs; there is no package-level logger.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
