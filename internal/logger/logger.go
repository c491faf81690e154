package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Init configures the process-wide JSON logger. Unknown levels fall back to info.
func Init(level string) {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})

	switch level {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func Debug(msg string, fields map[string]any) {
	logrus.WithFields(logrus.Fields(fields)).Debug(msg)
}

func Info(msg string, fields map[string]any) {
	logrus.WithFields(logrus.Fields(fields)).Info(msg)
}

func Warn(msg string, fields map[string]any) {
	logrus.WithFields(logrus.Fields(fields)).Warn(msg)
}

func Error(msg string, fields map[string]any) {
	logrus.WithFields(logrus.Fields(fields)).Error(msg)
}

// Fatal logs and exits the process with status 1.
func Fatal(msg string, fields map[string]any) {
	logrus.WithFields(logrus.Fields(fields)).Fatal(msg)
}
