package log

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Fields = logrus.Fields

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{})
	return l
}

// Init configures the shared logger for the given environment. A Sentry hook is added when SENTRY_DSN is present.
func Init(env, commit string) {
	switch env {
	case "test":
		logger.SetLevel(logrus.WarnLevel)
	case "development":
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	if env == "test" {
		return
	}
	if hook := NewSentryHook(env, commit); hook != nil {
		logger.AddHook(hook)
	}
}

// Logger returns the shared logrus logger, for libraries that accept a logrus.FieldLogger
func Logger() *logrus.Logger {
	return logger
}

func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func WithFields(fields Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

// WithContext attaches ctx to the log entry so that hooks can pull request data from a buffalo.Context
func WithContext(ctx context.Context) *logrus.Entry {
	return logger.WithContext(ctx)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}
