// Package logx builds the logrus loggers used by the CLI and the worker.
package logx

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to w at level. Timestamps are left out so
// interactive output reads like the operation log it is.
func New(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	return l
}

// Discard returns a logger that drops everything. Hooks still fire.
func Discard(level logrus.Level) *logrus.Logger {
	return New(io.Discard, level)
}
