package logging

import (
	"io"
	"os"
	"strings"

	"github.com/DeRuina/timberjack"
	"github.com/classpad/classpad-server/pkg/config"
	"github.com/sirupsen/logrus"
)

// NewLogger creates and configures a new logrus.Logger based on the provided configuration.
func NewLogger(cfg *config.LogSettings) (*logrus.Logger, error) {
	logger := logrus.New()

	logLevel := logrus.InfoLevel
	if cfg.LogLevel != "" {
		if lv, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
			logLevel = lv
		}
	}
	logger.SetLevel(logLevel)

	// By default, log to standard output. If file logging is enabled, log
	// to both stdout and the rotating file.
	var output io.Writer = os.Stdout
	if cfg.LogFile != "" {
		fileLogger := &timberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
		}
		output = io.MultiWriter(os.Stdout, fileLogger)
	}
	logger.SetOutput(output)

	if cfg.JSONFormat {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger, nil
}
