package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger is the process logger of the operator CLI.
func NewLogrusLogger(env string) *logrus.Logger {
	logger := logrus.New()
	switch env {
	case "production":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logger.SetOutput(os.Stdout)
	return logger
}
