// Package log provides the process-wide structured logger.
// It wraps logrus with the defaults the biped commands expect.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

// Fields is an alias so callers don't need to import logrus.
type Fields = logrus.Fields

// Init initializes the global logger with the specified level.
// Valid levels: "debug", "info", "warn", "error". Unknown values fall back to info.
// Only the first call, or the first use of L, takes effect.
func Init(level string) {
	once.Do(func() {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)

		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			lvl = logrus.InfoLevel
		}
		logger.SetLevel(lvl)

		if os.Getenv("BIPED_LOG_FORMAT") == "json" {
			logger.SetFormatter(&logrus.JSONFormatter{})
		} else {
			logger.SetFormatter(&logrus.TextFormatter{
				FullTimestamp:   true,
				TimestampFormat: "15:04:05.000",
			})
		}
	})
}

// L returns the global logger instance.
func L() *logrus.Logger {
	Init(os.Getenv("BIPED_LOG_LEVEL"))
	return logger
}

// SetOutput redirects log output, mostly so TUIs can keep the terminal clean.
func SetOutput(w io.Writer) {
	L().SetOutput(w)
}

// Debug logs at debug level.
func Debug(args ...any) {
	L().Debug(args...)
}

// Info logs at info level.
func Info(args ...any) {
	L().Info(args...)
}

// Warn logs at warn level.
func Warn(args ...any) {
	L().Warn(args...)
}

// Error logs at error level.
func Error(args ...any) {
	L().Error(args...)
}

// With returns an entry carrying the given fields.
func With(fields Fields) *logrus.Entry {
	return L().WithFields(fields)
}
