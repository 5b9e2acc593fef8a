package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/example/docgen/internal/config"
)

func newLogger(cfg config.LogConfig, w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger, nil
}
